package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	fiberadapter "github.com/awslabs/aws-lambda-go-api-proxy/fiber"

	"answerhub/internal/app"
	"answerhub/internal/config"
	"answerhub/internal/database"
	"answerhub/internal/otel"
	"answerhub/internal/repository/dynamo"
	"answerhub/internal/service"
	"answerhub/internal/storage"
)

// adapter is built once per cold start; the memoized store handle inside the
// manager survives across warm invocations of the same execution environment.
var adapter *fiberadapter.FiberLambda

func init() {
	ctx := context.Background()
	cfg := config.Load()

	if _, err := otel.Init(ctx); err != nil {
		log.Printf("tracing disabled: %v", err)
	}

	// Lambda only guarantees writable scratch space under /tmp; files there
	// are lost whenever the execution environment is recycled.
	files, err := storage.NewLocal(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	mgr := database.NewManager(cfg.Store)
	repo := dynamo.NewAnswerDynamo(mgr, cfg.Store.Table)
	svc := service.NewAnswerService(files, repo)

	srv, err := app.New(mgr, svc, files)
	if err != nil {
		log.Fatalf("failed to assemble application: %v", err)
	}
	adapter = fiberadapter.New(srv)
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
