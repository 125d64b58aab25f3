package service

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hellodemo/internal/repository"
)

// DefaultUID is the uid the hello endpoint always counts.
const DefaultUID int64 = 2

const (
	greetingPrefix = "hello"
	nullRendering  = "null"
)

var tracer = otel.Tracer("hellodemo/internal/service")

// HelloService defines the greeting use case.
type HelloService interface {
	// Hello counts temp_table rows for DefaultUID and returns "hello" followed by the count.
	Hello(ctx context.Context) (string, error)
}

type helloService struct {
	repo repository.DemoRepository
}

// NewHelloService constructs a new HelloService.
func NewHelloService(repo repository.DemoRepository) HelloService {
	return &helloService{repo: repo}
}

func (s *helloService) Hello(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "HelloService.Hello",
		trace.WithAttributes(attribute.Int64("temp_table.uid", DefaultUID)))
	defer span.End()

	total, err := s.repo.CountByUID(ctx, DefaultUID)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("count temp_table: %w", err)
	}
	return Greeting(total), nil
}

// Greeting concatenates "hello" and the count with no separator; a nil count renders as "null".
func Greeting(total *int64) string {
	if total == nil {
		return greetingPrefix + nullRendering
	}
	return greetingPrefix + strconv.FormatInt(*total, 10)
}
