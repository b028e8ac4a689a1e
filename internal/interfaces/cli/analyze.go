package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arthrokinetix/akx-engine/internal/infrastructure/database/postgres"
	storage "github.com/arthrokinetix/akx-engine/internal/infrastructure/storage/minio"
	"github.com/arthrokinetix/akx-engine/internal/pipeline"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		contentType string
		seed        int64
		save        bool
		summary     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run the full pipeline on a document and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			svc := a.newService(cmd.Context(), seed)
			result, err := svc.Run(cmd.Context(), raw, resolveContentType(contentType, args[0]))
			if err != nil {
				return err
			}

			if save {
				if err := a.persist(cmd.Context(), result); err != nil {
					return err
				}
			}

			if summary {
				printSummary(cmd, result)
				return nil
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&contentType, "type", "", "content type: html|text|pdf (default: inferred from extension)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "fix the random seed for reproducible output")
	cmd.Flags().BoolVar(&save, "save", false, "persist the result to the configured database and object store")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a short text summary instead of JSON")
	return cmd
}

// persist writes the result to whichever collaborators the configuration
// enables.  An explicit --save against a completely unconfigured deployment
// is an error; partial configurations persist to the available targets.
func (a *app) persist(ctx context.Context, result pipeline.Result) error {
	if !a.cfg.Database.Enabled && !a.cfg.Storage.Enabled {
		return fmt.Errorf("--save requires database or storage to be configured")
	}

	g, ctx := errgroup.WithContext(ctx)
	if a.cfg.Database.Enabled {
		g.Go(func() error { return a.saveArtwork(ctx, result) })
	}
	if a.cfg.Storage.Enabled {
		g.Go(func() error { return a.archiveResult(ctx, result) })
	}
	return g.Wait()
}

func (a *app) saveArtwork(ctx context.Context, result pipeline.Result) error {
	pool, err := postgres.Connect(ctx, a.cfg.Database, a.logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(a.cfg.Database, a.logger); err != nil {
		return err
	}

	repo := postgres.NewArtworkRepository(pool, a.logger)
	return repo.Save(ctx, postgres.Artwork{
		ID:              result.Signature.ID,
		Title:           result.SourceMetadata.Title,
		Subspecialty:    result.Profile.Subspecialty,
		DominantEmotion: result.Profile.DominantEmotion,
		Rarity:          result.Signature.RarityScore,
		Profile:         result.Profile,
		Signature:       result.Signature,
	})
}

func (a *app) archiveResult(ctx context.Context, result pipeline.Result) error {
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return err
	}
	if err := storage.EnsureBucket(ctx, client, a.cfg.Storage); err != nil {
		return err
	}
	archive := storage.NewResultArchive(client, a.cfg.Storage.Bucket, a.logger)
	return archive.Put(ctx, result.Signature.ID, result)
}

func printSummary(cmd *cobra.Command, result pipeline.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "signature:    %s\n", result.Signature.ID)
	fmt.Fprintf(out, "title:        %s\n", result.SourceMetadata.Title)
	fmt.Fprintf(out, "subspecialty: %s\n", result.Profile.Subspecialty)
	fmt.Fprintf(out, "dominant:     %s\n", result.Profile.DominantEmotion)
	fmt.Fprintf(out, "rarity:       %.3f\n", result.Signature.RarityScore)
	fmt.Fprintf(out, "elements:     %d\n", len(result.Scene))
}
