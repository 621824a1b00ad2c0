package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/contentpipe/backend/config"
	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/logging"
	"github.com/contentpipe/backend/metadata"
	"github.com/contentpipe/backend/middleware"
	"github.com/contentpipe/backend/optimizer"
	"github.com/contentpipe/backend/pipeline"
	"github.com/contentpipe/backend/render"
	"github.com/contentpipe/backend/scoring"
	"github.com/contentpipe/backend/stats"
	"github.com/contentpipe/backend/validator"
)

func loadEnv() {
	// .env.development wins for local work, then the plain .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
		}
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  contentpipe optimize <dir>   process every markdown file in <dir>
  contentpipe serve            run the HTTP API`)
	os.Exit(2)
}

func main() {
	loadEnv()

	cfg, err := config.Load(os.Getenv("PIPELINE_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "optimize":
		if len(os.Args) < 3 {
			usage()
		}
		runOptimize(cfg, log, os.Args[2])
	case "serve":
		runServe(cfg, log)
	default:
		usage()
	}
}

func runOptimize(cfg *config.Config, log *logging.Logger, dir string) {
	st, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		log.Warn("statistics disabled", "error", err)
		st = nil
	} else {
		defer st.Shutdown()
	}

	paths, err := pipeline.DiscoverMarkdown(dir)
	if err != nil {
		log.Fatal("discovering corpus", "error", err)
	}
	if len(paths) == 0 {
		log.Fatal("no markdown files found", "dir", dir)
	}

	orch := pipeline.New(cfg, log, st)
	report, err := orch.RunCorpus(context.Background(), paths)
	if err != nil {
		log.Fatal("corpus run failed", "error", err)
	}

	agg := report.Aggregate
	fmt.Printf("processed %d document(s): %d succeeded, %d failed, %d ready\n",
		agg.Documents, agg.Succeeded, agg.Failed, agg.Ready)
	fmt.Printf("average overall score: %.1f\n", agg.AverageOverall)
	fmt.Printf("artifacts written under %s\n", cfg.OutputDir)

	if agg.Succeeded == 0 {
		os.Exit(1)
	}
}

func runServe(cfg *config.Config, log *logging.Logger) {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	st, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		log.Warn("statistics disabled", "error", err)
		st = nil
	} else {
		defer st.Shutdown()
	}

	v := validator.New(validator.Options{
		PlatformMinimums: cfg.PlatformMinimums,
		MinWordCount:     cfg.MinWordCount,
	})
	renderer := render.New(v)
	rateLimiter := middleware.NewRateLimiter(2, 5)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler(log))
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.Stats(st))
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", func(c *gin.Context) { handleAnalyze(c, cfg, v) })
		api.POST("/optimize", handleOptimize)
		api.POST("/render", func(c *gin.Context) { handleRender(c, renderer) })

		api.GET("/statistics", func(c *gin.Context) {
			if st == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "statistics unavailable"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"current": st.GetCurrentStats(),
				"months":  st.GetAllMonths(),
			})
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}
	log.Info("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server failed", "error", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

// handleAnalyze scores and validates a document without changing it.
func handleAnalyze(c *gin.Context, cfg *config.Config, v *validator.Validator) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	doc := document.Parse(req.Content)
	meta := metadata.Extract(doc, metadata.Options{
		TitleMaxLen:    cfg.TitleMaxLen,
		DomainKeywords: cfg.DomainKeywords,
	})
	c.JSON(http.StatusOK, gin.H{
		"scores":     scoring.Score(doc),
		"metadata":   meta,
		"validation": v.Validate(c.Request.Context(), doc, meta),
	})
}

// handleOptimize runs the rewrite rules and reports the deltas.
func handleOptimize(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	res := optimizer.Optimize(document.Parse(req.Content))
	c.JSON(http.StatusOK, gin.H{
		"optimized":    res.After.Body(),
		"beforeScores": res.BeforeScores,
		"afterScores":  res.AfterScores,
		"appliedRules": res.AppliedRules,
		"warnings":     res.Warnings,
	})
}

type renderRequest struct {
	Template    string            `json:"template" binding:"required"`
	Title       string            `json:"title"`
	FrontMatter map[string]any    `json:"frontMatter"`
	Sections    map[string]string `json:"sections" binding:"required"`
}

// handleRender assembles a document from one of the narrative
// templates and returns it with its quality report.
func handleRender(c *gin.Context, renderer *render.Renderer) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template and sections are required"})
		return
	}

	res, err := renderer.Render(c.Request.Context(), req.Template, render.Context{
		Title:       req.Title,
		FrontMatter: req.FrontMatter,
		Sections:    req.Sections,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"document":   res.Doc.Body(),
		"scores":     res.Scores,
		"validation": res.Validation,
	})
}
