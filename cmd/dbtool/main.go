package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/render"
)

// dbtool maintains the report store from the command line:
//
//	dbtool init                 create the Postgres schema
//	dbtool list                 list saved reports
//	dbtool sheet <id>           print driver route sheets for a report
//	dbtool sheet -email a@b.c,d@e.f <id>   mail the sheets instead
func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
	}

	repo := openRepository()
	ctx := context.Background()

	switch os.Args[1] {
	case "init":
		runInit(ctx)
	case "list":
		runList(ctx, repo)
	case "sheet":
		runSheet(ctx, repo, os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dbtool <init|list|sheet> [args]")
	os.Exit(2)
}

func openRepository() ports.ReportRepository {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		return repositories.NewPostgresReportRepository(conn)
	}

	repo, err := repositories.NewFileReportRepository(config.Get("DATA_DIR", "data/history"))
	if err != nil {
		log.Fatal(err)
	}
	return repo
}

func runInit(ctx context.Context) {
	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required for init")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func runList(ctx context.Context, repo ports.ReportRepository) {
	entries, err := repo.ListReports(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  routes=%d deliveries=%d distance=%.1fkm\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.TotalRoutes, e.TotalDeliveries, e.TotalDistanceKm)
	}
}

func runSheet(ctx context.Context, repo ports.ReportRepository, args []string) {
	fs := flag.NewFlagSet("sheet", flag.ExitOnError)
	email := fs.String("email", "", "comma-separated recipients; prints to stdout when empty")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatal("sheet requires exactly one report id")
	}
	id := fs.Arg(0)

	entry, err := repo.GetReport(ctx, id)
	if err != nil {
		log.Fatalf("load report %s: %v", id, err)
	}

	if *email == "" {
		fmt.Print(render.ReportSheets(entry.Depot, entry.Report))
		return
	}

	sender := &render.EmailSender{
		Host: os.Getenv("SMTP_HOST"),
		Port: config.Get("SMTP_PORT", "587"),
		From: os.Getenv("SMTP_FROM"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
	}
	recipients := strings.Split(*email, ",")
	for i := range recipients {
		recipients[i] = strings.TrimSpace(recipients[i])
	}

	if err := sender.SendSheets(recipients, entry.Depot, entry.Report); err != nil {
		log.Fatal(err)
	}
	log.Printf("route sheets for %s sent to %s", id, *email)
}
