// Package websocket - websocket/metrics.go
// file: websocket/metrics.go

package websocket

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// Namespace for all challenge metrics
var metricsNamespace = "CoachingChallenge"

// metricsEnabled gates CloudWatch calls; tests leave it off.
var metricsEnabled = false

// Reuse a single CloudWatch client for all metrics calls
var cwClient *cloudwatch.CloudWatch

// EnableMetrics initializes the CloudWatch client. Called from main when
// metrics publishing is wanted.
func EnableMetrics() {
	cwClient = cloudwatch.New(session.Must(session.NewSession()))
	metricsEnabled = true
}

// PublishDashboardConnections pushes the current dashboard connection count
func PublishDashboardConnections(count int) {
	putMetric("DashboardConnections", float64(count), "Count")
}

// PublishChallengeStats pushes the capacity projection as gauges
func PublishChallengeStats(stats models.ChallengeStats) {
	putMetric("ConfirmedRegistrations", float64(stats.ConfirmedCount), "Count")
	putMetric("WaitlistedRegistrations", float64(stats.WaitlistCount), "Count")
	putMetric("RemainingSeats", float64(stats.Remaining), "Count")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string) {
	if !metricsEnabled || cwClient == nil {
		return
	}

	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(value),
				Unit:       aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
