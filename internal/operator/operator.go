package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/operator/actions"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   <-chan ActionItem
	done    <-chan struct{}
	logger  *logrus.Logger
}

func NewOperator(s *storage.Storage, queue <-chan ActionItem, done <-chan struct{}, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		done:    done,
		logger:  logger,
	}
}

// Run processes items until done is closed.
func (o *Operator) Run() {
	for {
		select {
		case item := <-o.queue:
			item.response <- ActionItemResponse{err: o.processItem(item)}
		case <-o.done:
			return
		}
	}
}

func (o *Operator) processItem(item ActionItem) (err error) {
	actionName := fmt.Sprintf("%T", item.action)
	if err = item.ctx.Err(); err != nil {
		return err
	}
	// Requests that submit several actions report their summed time.
	defer logging.GetLogData(item.ctx).AddToExistingTiming("operatorMs")()

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		o.logger.WithError(err).WithField("action", actionName).Error("Operator.processItem.Write")
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = writer.Rollback()
			err = fmt.Errorf("action %s panicked: %v", actionName, r)
			o.logger.WithField("action", actionName).Error(err)
		}
	}()

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.logger.WithError(rbErr).WithField("action", actionName).Error("Operator.processItem.Rollback")
		}
		o.logger.WithError(err).WithField("action", actionName).Warn("Operator.processItem.Perform")
		return err
	}

	if err = writer.Commit(); err != nil {
		o.logger.WithError(err).WithField("action", actionName).Error("Operator.processItem.Commit")
		return err
	}
	return nil
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
