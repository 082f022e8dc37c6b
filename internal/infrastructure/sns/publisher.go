package sns

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/Nnvvee96/planora.ai-sub005/internal/config"
	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
)

// ReportPublisher publishes purge cycle summaries to an SNS topic for ops
// consumption (alerting, audit).
type ReportPublisher interface {
	PublishPurgeReport(ctx context.Context, report *domain.PurgeReport) error
}

type publisher struct {
	client   *sns.Client
	topicARN string
}

func NewPublisher(cfg *config.Config) (ReportPublisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &publisher{client: sns.NewFromConfig(awsCfg), topicARN: cfg.PurgeReportTopic}, nil
}

func (p *publisher) PublishPurgeReport(ctx context.Context, report *domain.PurgeReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal purge report: %w", err)
	}
	msg := string(body)
	subject := fmt.Sprintf("account purge cycle: %d processed", report.TotalProcessed)
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Subject:  &subject,
		Message:  &msg,
	})
	return err
}
