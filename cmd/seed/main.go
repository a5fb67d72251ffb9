// Seeds a running graph database with demo recruiting data and walks the
// full pipeline once: team match, interviewer match, a session reward loop
// and a phone-screen decision.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/decision"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/matcher"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/driver"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/graph"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg := config.Default()
	if uri := os.Getenv("GRAPH_URI"); uri != "" {
		cfg.Graph.URI = uri
	}
	cfg.Graph.User = os.Getenv("GRAPH_USER")
	cfg.Graph.Password = os.Getenv("GRAPH_PASSWORD")

	zl, err := logger.New(false, false)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx := context.Background()

	d, err := driver.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password, zl)
	if err != nil {
		log.Fatalf("Failed to connect to graph database: %v", err)
	}
	defer d.Close(ctx)

	embedder := llm.NewLocalEmbedder(0)
	store := graph.NewStore(d, embedder, zl)
	if err := store.BuildIndices(ctx); err != nil {
		log.Fatalf("Failed to build indices: %v", err)
	}

	fmt.Println("1. Seeding profiles...")
	if err := seed(ctx, store); err != nil {
		fmt.Printf("FAILED: seed profiles: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("PASSED: seed profiles")

	m := matcher.New(store, embedder, cfg.Matching, zl)

	fmt.Println("2. Matching candidate to team...")
	teamMatch, err := m.MatchToTeam(ctx, "cand-ada")
	if err != nil {
		fmt.Printf("FAILED: team match: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("PASSED: team match -> %s (score %.3f, %d alternatives)\n",
		teamMatch.TeamID, teamMatch.MatchScore, len(teamMatch.Alternatives))

	fmt.Println("3. Matching candidate to interviewer...")
	personMatch, err := m.MatchToPerson(ctx, "cand-ada", teamMatch.TeamID)
	if err != nil {
		fmt.Printf("FAILED: interviewer match: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("PASSED: interviewer match -> %s (score %.3f)\n",
		personMatch.InterviewerID, personMatch.MatchScore)

	fmt.Println("4. Running session reward loop...")
	session, err := m.NewTeamSession(ctx, "cand-ada")
	if err != nil {
		fmt.Printf("FAILED: session: %v\n", err)
		os.Exit(1)
	}
	for i := 0; i < 20; i++ {
		teamID, err := session.Select()
		if err != nil {
			fmt.Printf("FAILED: session select: %v\n", err)
			os.Exit(1)
		}
		// Pretend the GPU team keeps producing good interview outcomes.
		reward := 0.2
		if teamID == "team-gpu" {
			reward = 0.9
		}
		if err := session.Record(teamID, reward); err != nil {
			fmt.Printf("FAILED: session record: %v\n", err)
			os.Exit(1)
		}
	}
	best := session.Best()
	fmt.Printf("PASSED: session converged on %s (score %.3f)\n", best.TeamID, best.MatchScore)

	fmt.Println("5. Making phone-screen decision...")
	engine := decision.NewEngine(store, embedder, cfg.Decision)
	strong := 0.85
	verdict, err := engine.MakeDecision(ctx, "cand-ada", "pos-gpu", model.ExtractedInfo{
		MotivationScore:    &strong,
		CommunicationScore: &strong,
		TechnicalDepth:     &strong,
		CulturalFit:        &strong,
	})
	if err != nil {
		fmt.Printf("FAILED: decision: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("PASSED: decision -> %s (confidence %.3f, similarity %.3f)\n",
		verdict.Decision, verdict.Confidence, verdict.SimilarityScore)
}

func seed(ctx context.Context, store *graph.Store) error {
	teams := []model.TeamProfile{
		{ID: "team-gpu", Name: "GPU Infrastructure", Needs: []string{"CUDA", "C++", "PyTorch"}, Expertise: []string{"LLM Inference", "Kernels"}},
		{ID: "team-web", Name: "Web Platform", Needs: []string{"React", "TypeScript"}, Expertise: []string{"Frontend"}},
		{ID: "team-data", Name: "Data Platform", Needs: []string{"Spark", "Python"}, Expertise: []string{"ETL"}},
	}
	for i := range teams {
		if err := store.SaveTeam(ctx, &teams[i]); err != nil {
			return err
		}
	}

	interviewers := []model.InterviewerProfile{
		{ID: "int-kay", Name: "Kay", TeamID: "team-gpu", Expertise: []string{"CUDA", "Kernels"}, Seniority: "staff"},
		{ID: "int-lee", Name: "Lee", TeamID: "team-gpu", Expertise: []string{"PyTorch", "Inference"}, Seniority: "senior"},
		{ID: "int-moe", Name: "Moe", TeamID: "team-web", Expertise: []string{"React"}, Seniority: "senior"},
	}
	for i := range interviewers {
		if err := store.SaveInterviewer(ctx, &interviewers[i]); err != nil {
			return err
		}
	}

	positions := []model.PositionProfile{
		{ID: "pos-gpu", Title: "GPU Systems Engineer", RequiredSkills: []string{"CUDA", "C++", "PyTorch"}, Domain: "LLM Inference", Level: "senior"},
	}
	for i := range positions {
		if err := store.SavePosition(ctx, &positions[i]); err != nil {
			return err
		}
	}

	candidates := []model.CandidateProfile{
		{ID: "cand-ada", Name: "Ada", Skills: []string{"CUDA", "C++", "PyTorch"}, Domains: []string{"LLM Inference"}, ExperienceYears: 7},
		{ID: "cand-bob", Name: "Bob", Skills: []string{"React", "TypeScript"}, Domains: []string{"Frontend"}, ExperienceYears: 4},
		{ID: "cand-cia", Name: "Cia", Skills: []string{"Spark", "Python"}, Domains: []string{"ETL"}, ExperienceYears: 5},
	}
	for i := range candidates {
		if err := store.SaveCandidate(ctx, &candidates[i]); err != nil {
			return err
		}
	}

	return nil
}
