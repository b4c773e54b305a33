package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"trucking-site/internal/common/config"
	"trucking-site/internal/common/logger"
	"trucking-site/internal/common/metrics"
	"trucking-site/internal/site"
)

// SESService is the slice of the SES client the notifier uses.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSService is the slice of the SNS client the notifier uses.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// AWSNotifier emails dispatch via SES and optionally texts the on-call
// number via SNS on every accepted submission.
type AWSNotifier struct {
	sesClient SESService
	snsClient SNSService
	cfg       config.NotificationConfig
	logger    logger.Logger
}

// NewAWSNotifier builds clients from the default AWS credential chain.
func NewAWSNotifier(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*AWSNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &AWSNotifier{
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
		cfg:       cfg,
		logger:    log,
	}, nil
}

// NewAWSNotifierWithClients wires pre-built clients, for tests.
func NewAWSNotifierWithClients(sesClient SESService, snsClient SNSService, cfg config.NotificationConfig, log logger.Logger) *AWSNotifier {
	return &AWSNotifier{sesClient: sesClient, snsClient: snsClient, cfg: cfg, logger: log}
}

func (n *AWSNotifier) SubmissionAccepted(ctx context.Context, event Event) {
	if n.cfg.Email.Enabled {
		n.sendEmail(ctx, event)
	}
	// Texting the on-call number is reserved for applicants already holding
	// a CDL, the leads worth interrupting dispatch for.
	if n.cfg.SMS.Enabled && event.Kind == "application" && event.HasCDL {
		n.sendSMS(ctx, event)
	}
}

func (n *AWSNotifier) sendEmail(ctx context.Context, event Event) {
	subject := fmt.Sprintf("[%s] New %s from %s", site.CompanyName, event.Kind, event.Name)
	body := fmt.Sprintf(
		"Kind: %s\nID: %s\nName: %s\nEmail: %s\nPhone: %s\nTopic: %s\n\n%s\n",
		event.Kind, event.ID, event.Name, event.Email, event.Phone, event.Topic, event.Summary,
	)

	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.cfg.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.cfg.Email.DispatchEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("email", "error").Inc()
		n.logger.Error("dispatch email failed", map[string]interface{}{
			"kind":  event.Kind,
			"id":    event.ID,
			"error": err.Error(),
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("email", "success").Inc()
}

func (n *AWSNotifier) sendSMS(ctx context.Context, event Event) {
	text := fmt.Sprintf("%s: new %s from %s (%s)", site.CompanyName, event.Kind, event.Name, event.ID)

	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.cfg.SMS.AlertNumber),
		Message:     aws.String(text),
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("sms", "error").Inc()
		n.logger.Error("dispatch sms failed", map[string]interface{}{
			"kind":  event.Kind,
			"id":    event.ID,
			"error": err.Error(),
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("sms", "success").Inc()
}
