package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"cleanops_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues booking reminder tasks ahead of the service time.
type Client struct {
	client   *asynq.Client
	queue    string
	leadTime time.Duration
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	leadTime := cfg.GetReminderLeadTime()
	if leadTime <= 0 {
		leadTime = 24 * time.Hour
	}

	return &Client{
		client:   asynq.NewClient(opt),
		queue:    queue,
		leadTime: leadTime,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleReminder enqueues a reminder to fire leadTime before the service
// slot. A slot already inside the lead window gets the reminder immediately.
func (c *Client) ScheduleReminder(ctx context.Context, bookingID uuid.UUID, serviceDate, serviceTime string) error {
	if c == nil || c.client == nil {
		return nil
	}

	slot, err := time.ParseInLocation("2006-01-02 15:04", serviceDate+" "+serviceTime, time.Local)
	if err != nil {
		return fmt.Errorf("invalid service slot: %w", err)
	}

	task, err := NewBookingReminderTask(BookingReminderPayload{BookingID: bookingID.String()})
	if err != nil {
		return err
	}

	runAt := slot.Add(-c.leadTime)
	if runAt.Before(time.Now()) {
		runAt = time.Now()
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessAt(runAt), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
