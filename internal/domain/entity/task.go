package entity

type TaskStatus string

const (
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

func (s TaskStatus) String() string {
	return string(s)
}

func (s TaskStatus) IsCompleted() bool {
	return s == TaskStatusCompleted
}
