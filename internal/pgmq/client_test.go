package pgmq

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// TestQueueRoundTrip exercises the client against a real Postgres with the
// pgmq extension installed. It is skipped unless TEST_DATABASE_URL is set.
func TestQueueRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skip pgmq integration test")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("failed to open DB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	client := New(db)

	queue := fmt.Sprintf("pgmq_test_%d", time.Now().UnixNano())
	if err := client.CreateQueue(ctx, queue); err != nil {
		t.Fatalf("failed to create queue: %v", err)
	}
	defer func() {
		if _, err := db.ExecContext(ctx, "SELECT pgmq.drop_queue($1)", queue); err != nil {
			t.Logf("failed to drop test queue %s: %v", queue, err)
		}
	}()

	// CreateQueue must be idempotent.
	if err := client.CreateQueue(ctx, queue); err != nil {
		t.Fatalf("second CreateQueue should succeed: %v", err)
	}

	payload := []byte(`{"instructor_code":"ABC123","course_code":"ACCT 2001","trigger":"assessments_replaced"}`)
	if err := client.Send(ctx, queue, payload); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	msgs, err := client.ReadWithPoll(ctx, queue, 30, 1, 5)
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if string(msgs[0].Data) != string(payload) {
		t.Errorf("payload mismatch: got %s", string(msgs[0].Data))
	}

	if err := client.Delete(ctx, queue, []int64{msgs[0].ID}); err != nil {
		t.Fatalf("failed to delete message: %v", err)
	}

	// After the ack the queue must be empty.
	msgs, err = client.ReadWithPoll(ctx, queue, 30, 1, 1)
	if err != nil {
		t.Fatalf("failed to re-read queue: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty queue after delete, got %d messages", len(msgs))
	}
}
