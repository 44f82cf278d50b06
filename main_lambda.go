//go:build lambda

// main_lambda.go
//
// AWS Lambda entry point serving POST /api/plan bodies through a function URL.

package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/hitroute/hitroute/api"
	"github.com/hitroute/hitroute/raid"
)

func main() {
	svc, err := api.NewService(raid.DefaultPlannerConfig())
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	lambda.Start(svc.LambdaHandler)
}
