package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes operation counters to CloudWatch. A nil *Metrics is
// valid and drops every datum, so callers never need to guard the flag.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a metrics publisher for the given namespace
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// CountOperation records one invocation of a coordinator operation
func (m *Metrics) CountOperation(ctx context.Context, operation string, success bool) {
	if m == nil || m.client == nil {
		return
	}

	result := "Success"
	if !success {
		result = "Failure"
	}

	// Best effort: a dropped datum must never fail the request.
	_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("OperationCount"),
				Value:      aws.Float64(1),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: []types.Dimension{
					{Name: aws.String("Operation"), Value: aws.String(operation)},
					{Name: aws.String("Result"), Value: aws.String(result)},
				},
			},
		},
	})
}
