package splay

// TaskType describes the type of a Task, used internally to control behaviour
type TaskType string

const (
	// NoOpTaskType indicates that this task does not manipulate data
	NoOpTaskType TaskType = "no_op"
	// RepackTaskType indicates that this task triggers a Repack
	RepackTaskType TaskType = "repack"
	// AccumulateTaskType indicates that this task triggers an Accumulation
	AccumulateTaskType TaskType = "accumulate"
	// FlatMapTaskType indicates that this task triggers a FlatMap
	FlatMapTaskType TaskType = "flatmap"
	// MapTaskType indicates that this task triggers a Map
	MapTaskType TaskType = "map"
	// FilterTaskType indicates that this task triggers a Filter
	FilterTaskType TaskType = "filter"
	// CollectTaskType indicates that this task triggers a Collect
	CollectTaskType TaskType = "collect"
)
