package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/saulo-duarte/lms-lambda/internal/container"
	"github.com/saulo-duarte/lms-lambda/internal/router"
)

var chiLambda *chiadapter.ChiLambda

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return chiLambda.ProxyWithContext(ctx, req)
}

func main() {
	_ = godotenv.Load()

	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		CourseHandler:     c.CourseContainer.Handler,
		EnrollmentHandler: c.EnrollmentContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		SubmissionHandler: c.SubmissionContainer.Handler,
		ModuleHandler:     c.ModuleContainer.Handler,
		MaterialHandler:   c.MaterialContainer.Handler,
		DashboardHandler:  c.DashboardContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		chiLambda = chiadapter.New(r)
		lambda.Start(handler)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("Starting HTTP server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.WithError(err).Fatal("HTTP server stopped")
	}
}
