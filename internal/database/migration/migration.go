package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"answerhub/internal/database"
)

// EnsureTable creates the answers table if it does not exist. It runs exactly
// once at process start; request handling never re-checks the schema and
// relies on the connection manager's reachability gate instead.
//
// The table uses on-demand billing with a single string hash key "id".
func EnsureTable(ctx context.Context, api database.API, table string) error {
	start := time.Now()

	logJSON(map[string]any{
		"component": "database",
		"event":     "table_check",
		"status":    "starting",
		"table":     table,
	})

	_, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	})
	if err == nil {
		logJSON(map[string]any{
			"component":   "database",
			"event":       "table_check_skip",
			"status":      "success",
			"msg":         "table already exists, skipping bootstrap",
			"table":       table,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		logJSON(map[string]any{
			"component":     "database",
			"event":         "table_check_failed",
			"status":        "error",
			"error_message": err.Error(),
			"table":         table,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("describe table %s: %w", table, err)
	}

	_, err = api.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		logJSON(map[string]any{
			"component":     "database",
			"event":         "table_create_failed",
			"status":        "error",
			"error_message": err.Error(),
			"table":         table,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("create table %s: %w", table, err)
	}

	logJSON(map[string]any{
		"component":   "database",
		"event":       "table_created",
		"status":      "success",
		"table":       table,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal bootstrap log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
