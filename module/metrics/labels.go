package metrics

const (
	LabelEnd = "end"
)

const (
	EndFront = "front"
	EndBack  = "back"
)

const (
	ResourceWorkQueue = "work_queue"
)

const (
	namespaceStress = "stress"
)
