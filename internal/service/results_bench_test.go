package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/godilite/feedback360-server/internal/aggregation"
	"github.com/godilite/feedback360-server/internal/repository"
	dbbuilder "github.com/godilite/feedback360-server/pkg/database"
)

const (
	benchPersons      = 50
	benchEvaluations  = 8
	benchCompetencies = 12
)

var benchRoles = []string{"self", "peer", "manager", "report"}

func setupRealDB(tb testing.TB) *repository.FeedbackRepository {
	tb.Helper()

	db, err := dbbuilder.New(context.Background(),
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(":memory:"),
		dbbuilder.WithSchema(repository.Schema...),
	)
	if err != nil {
		tb.Fatalf("failed to create db pool via builder: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	var sb strings.Builder
	sb.WriteString("INSERT INTO cycles (id, name) VALUES ('bench', 'Benchmark');\n")
	for c := 0; c < benchCompetencies; c++ {
		fmt.Fprintf(&sb, "INSERT INTO competencies (id, title, type, dimension, grp, position) VALUES ('c%d', 'Skill %d', 'scale', 'D%d', 'G%d', %d);\n",
			c, c, c%3, c%2, c)
	}
	for p := 0; p < benchPersons; p++ {
		fmt.Fprintf(&sb, "INSERT INTO evaluated_persons (id, name) VALUES ('p%d', 'Person %d');\n", p, p)
		for e := 0; e < benchEvaluations; e++ {
			fmt.Fprintf(&sb, "INSERT INTO evaluations (id, cycle_id, evaluated_id, relationship) VALUES ('e%d-%d', 'bench', 'p%d', '%s');\n",
				p, e, p, benchRoles[e%len(benchRoles)])
			for c := 0; c < benchCompetencies; c++ {
				fmt.Fprintf(&sb, "INSERT INTO responses (evaluation_id, competency_id, value) VALUES ('e%d-%d', 'c%d', %d);\n",
					p, e, c, 1+(p+e+c)%5)
			}
		}
	}

	if _, err := db.Exec(sb.String()); err != nil {
		tb.Fatalf("failed to seed db: %v", err)
	}

	return repository.NewFeedbackRepository(db)
}

func BenchmarkGetResults(b *testing.B) {
	repo := setupRealDB(b)
	svc := NewResultsService(repo, zap.NewNop())

	b.ReportAllocs()

	for b.Loop() {
		_, _ = svc.GetResults(context.Background(), "bench")
	}
}

func BenchmarkGetResultsParallelEngine(b *testing.B) {
	repo := setupRealDB(b)
	svc := NewResultsService(repo, zap.NewNop(),
		WithEngine(aggregation.New(aggregation.WithParallelism(4))))

	b.ReportAllocs()

	for b.Loop() {
		_, _ = svc.GetResults(context.Background(), "bench")
	}
}
