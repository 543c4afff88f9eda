package lmstfy

import (
	"encoding/json"
	"fmt"

	"github.com/bitleak/lmstfy/client"
)

// Client Lmstfy 客户端封装（通知任务投递）
type Client struct {
	cli   *client.LmstfyClient
	queue string
}

// NewClient 创建 Lmstfy 客户端
func NewClient(host string, port int, namespace, token, queue string) *Client {
	return &Client{
		cli:   client.NewLmstfyClient(host, port, namespace, token),
		queue: queue,
	}
}

// Publish 发布通知任务到队列
// TTL 1小时，重试3次；推送服务在下游消费，这里只负责投递
func (c *Client) Publish(data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal notify job failed: %w", err)
	}

	_, err = c.cli.Publish(c.queue, payload, 3600, 3, 0)
	if err != nil {
		return fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return nil
}

// Job 队列中的通知任务
type Job struct {
	ID   string
	Data []byte
}

// Consume 消费一条通知任务
// timeout / ttr 单位为秒；超时未拉到消息时返回 (nil, nil)
func (c *Client) Consume(timeout, ttr uint32) (*Job, error) {
	job, err := c.cli.Consume(c.queue, timeout, ttr)
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}
	if job == nil {
		return nil, nil
	}
	return &Job{ID: job.ID, Data: job.Data}, nil
}

// Ack 确认任务处理完成
func (c *Client) Ack(jobID string) error {
	if err := c.cli.Ack(c.queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}
