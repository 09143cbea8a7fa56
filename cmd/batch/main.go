// claims-batch runs the validation pipeline over a file of claims instead of
// the HTTP API. Input bundles carry pre-decided model output, so the run is
// deterministic and needs no decision-source credentials.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit"
	auditmemory "github.com/tech920/motor-claim-decision-api-sub000/internal/audit/store/memory"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/service"
	claimsmemory "github.com/tech920/motor-claim-decision-api-sub000/internal/claims/store/memory"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/decision"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/extract"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/insurer"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/platform/config"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/platform/logger"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/refdata"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/requestcontext"
)

var (
	inputPath  string
	outputPath string
	workers    int
)

var rootCmd = &cobra.Command{
	Use:   "claims-batch",
	Short: "Validate a file of motor claim decisions against the rulebook",
	Long: `claims-batch reads accident claims from a JSON file, runs each party's
model decision through the validation rulebook, and writes the corrected
decisions to an output file. Claims are processed concurrently up to the
worker bound; output order matches input order.`,
	RunE: runBatch,
}

func init() {
	rootCmd.Flags().StringVar(&inputPath, "input", "", "path to the claims JSON file (required)")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "path for the validated results JSON file (required)")
	rootCmd.Flags().IntVar(&workers, "workers", 4, "number of claims validated concurrently")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// batchInput is the file format: a list of case bundles, each carrying the
// party facts and the model's raw decisions in party order.
type batchInput struct {
	Claims []models.CaseBundle `json:"claims"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if workers < 1 {
		workers = 1
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read claims file: %w", err)
	}
	var input batchInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parse claims file: %w", err)
	}
	if len(input.Claims) == 0 {
		return fmt.Errorf("claims file %s contains no claims", inputPath)
	}
	for i, bundle := range input.Claims {
		if err := bundle.Validate(); err != nil {
			return fmt.Errorf("claims file %s: claim %d (%s): %w",
				inputPath, i+1, bundle.ClaimID, err)
		}
	}

	var vehicles *refdata.Table
	if cfg.RefDataPath != "" {
		if table, err := refdata.Load(cfg.RefDataPath); err == nil {
			vehicles = table
		} else {
			log.Warn("vehicle reference table unavailable",
				slog.String("path", cfg.RefDataPath),
				slog.String("error", err.Error()),
			)
		}
	}

	classifier := insurer.NewClassifier(insurer.Profile{
		Brand:          cfg.PrimaryCarrierBrand,
		ArabicFullName: cfg.PrimaryCarrierArabicName,
	})
	engine := decision.NewEngine(classifier, log, nil)
	auditStore := auditmemory.New()

	claims, err := service.New(
		extract.NewNormalizer(vehicles),
		engine,
		noSource{},
		claimsmemory.New(),
		log,
		service.WithAuditPublisher(audit.NewPublisher(auditStore)),
	)
	if err != nil {
		return err
	}

	results := make([]models.CaseResult, len(input.Claims))
	var (
		mu        sync.Mutex
		corrected int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, bundle := range input.Claims {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decisions := claims.Validate(gctx, bundle)
			results[i] = models.CaseResult{
				ClaimID:   bundle.ClaimID,
				Decisions: decisions,
				CreatedAt: requestcontext.Now(gctx),
			}
			changed := 0
			for j, d := range decisions {
				if j < len(bundle.Raw) && d.Decision != bundle.Raw[j].Decision {
					changed++
				}
			}
			mu.Lock()
			corrected += changed
			mu.Unlock()
			log.Info("claim validated",
				slog.String("claim_id", bundle.ClaimID),
				slog.Int("parties", len(decisions)),
				slog.Int("corrected", changed),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out, err := json.MarshalIndent(struct {
		Results []models.CaseResult `json:"results"`
	}{Results: results}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write results file: %w", err)
	}

	log.Info("batch complete",
		slog.Int("claims", len(results)),
		slog.Int("decisions_corrected", corrected),
		slog.String("output", outputPath),
	)
	return nil
}

// noSource satisfies the service constructor's decision-source dependency.
// Batch runs only drive the engine-only Validate path over bundles that
// already carry their model decisions, so Decide is never called; if a code
// change ever routes batch through Process, the ERROR passes through the
// engine untouched instead of fabricating a decision.
type noSource struct{}

func (noSource) Decide(context.Context, models.CaseBundle, int) models.RawDecision {
	return models.RawDecision{
		Decision:  models.DecisionError,
		Reasoning: "batch validation runs without a decision source",
	}
}
