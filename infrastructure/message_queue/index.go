package messagequeue

import (
	"zsecure.app/infrastructure/message_queue/asynq"
	mq_types "zsecure.app/infrastructure/message_queue/types"
)

var TaskQueue mq_types.TaskQueueBroker = &asynq.AsynqBroker{}

func StartQueue() {
	TaskQueue.Start()
}
