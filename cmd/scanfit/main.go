// Command scanfit clusters a 2D range scan and fits line segments or circles
// to each cluster. Scans come from a CSV file, a synthetic scene generator or
// a previously stored scan, and results can be printed, rendered to PNG or
// HTML, and persisted to sqlite for later replay.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	randv2 "math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/scangeom/geom"
	"github.com/banshee-data/scangeom/internal/scanplot"
	"github.com/banshee-data/scangeom/internal/scanreport"
	"github.com/banshee-data/scangeom/internal/scansim"
	"github.com/banshee-data/scangeom/internal/version"
	"github.com/banshee-data/scangeom/scanfit"
	"github.com/banshee-data/scangeom/scanstore"
)

// readPointsCSV reads x,y records from r, one point per line. A single
// non-numeric header row is tolerated.
func readPointsCSV(r io.Reader) ([]geom.Point, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	var points []geom.Point
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: want x,y fields, got %d", i+1, len(record))
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if errX != nil || errY != nil {
			if i == 0 {
				// Header row.
				continue
			}
			if errX != nil {
				return nil, fmt.Errorf("invalid x at line %d: %v", i+1, errX)
			}
			return nil, fmt.Errorf("invalid y at line %d: %v", i+1, errY)
		}
		points = append(points, geom.Point{X: x, Y: y})
	}
	return points, nil
}

// fitConfig carries the fitting configuration resolved from flags.
type fitConfig struct {
	algo           string
	regThreshold   float64
	scoreThreshold float64
	ransac         scanfit.RANSACParams
	merge          scanfit.MergeParams
}

// fitParams is the JSON parameter snapshot stored alongside a persisted fit.
type fitParams struct {
	ClusterDist    float64 `json:"cluster_dist"`
	MinCluster     int     `json:"min_cluster"`
	RegThreshold   float64 `json:"reg_threshold"`
	MergeDist      float64 `json:"merge_dist"`
	MergeAngle     float64 `json:"merge_angle"`
	RANSACDelta    float64 `json:"ransac_delta"`
	RANSACIters    int     `json:"ransac_iters"`
	ScoreThreshold float64 `json:"score_threshold"`
	Seed           int64   `json:"seed"`
}

// fitClusters runs the selected algorithm over each cluster. Segment
// algorithms finish with a merge pass over the collected segments so fits
// spanning a cluster boundary join up; circle fits below the score threshold
// are dropped.
func fitClusters(clusters [][]geom.Point, cfg fitConfig) ([]geom.LineSegment, []geom.Circle, []float64, error) {
	var segments []geom.LineSegment
	var circles []geom.Circle
	var scores []float64
	for _, cluster := range clusters {
		switch cfg.algo {
		case "merge":
			segments = append(segments, scanfit.FitLineSegments(cluster, scanfit.SegmentationParams{
				RegressionThreshold: cfg.regThreshold,
				MergeDistThreshold:  cfg.merge.DistThreshold,
				MergeAngleThreshold: cfg.merge.AngleThreshold,
			})...)
		case "split":
			segments = append(segments, scanfit.PiecewiseRegressionSplit(cluster, cfg.regThreshold)...)
		case "ransac":
			segments = append(segments, scanfit.FitLineSegmentsRANSAC(cluster, cfg.scoreThreshold, cfg.ransac)...)
		case "circle":
			c, score := scanfit.FitCircleRANSAC(cluster, cfg.ransac)
			if score < cfg.scoreThreshold {
				continue
			}
			circles = append(circles, c)
			scores = append(scores, score)
		default:
			return nil, nil, nil, fmt.Errorf("unknown algorithm %q (want merge, split, ransac or circle)", cfg.algo)
		}
	}
	if cfg.algo != "circle" {
		segments = scanfit.MergeCloseSegments(segments, cfg.merge)
	}
	return segments, circles, scores, nil
}

func main() {
	// Input selection
	input := flag.String("input", "", "CSV file of x,y points, one per line")
	synthetic := flag.String("synthetic", "", "Generate a synthetic scene instead of reading input: "+strings.Join(scansim.Scenes(), ", "))
	n := flag.Int("n", 360, "Ray count for synthetic scenes")
	noise := flag.Float64("noise", 0.01, "Range noise sigma in meters for synthetic scenes")
	seed := flag.Int64("seed", 1, "Random seed for synthetic scenes and RANSAC sampling")
	orderOffset := flag.Float64("order-offset", 0, "Bearing offset in radians when sorting CSV input into sweep order")

	// Clustering
	clusterDist := flag.Float64("cluster-dist", scanfit.DefaultClusterDistThreshold, "Cluster neighbour distance in meters")
	minCluster := flag.Int("min-cluster", scanfit.DefaultMinClusterSize, "Discard clusters with this many points or fewer")

	// Fitting
	algo := flag.String("algo", "merge", "Fitting algorithm: merge, split, ransac or circle")
	regThreshold := flag.Float64("reg-threshold", scanfit.DefaultRegressionErrorThreshold, "Regression error gate for piecewise segmentation")
	mergeDist := flag.Float64("merge-dist", scanfit.DefaultMergeDistThreshold, "Endpoint gap for the segment merge pass in meters")
	mergeAngle := flag.Float64("merge-angle", scanfit.DefaultMergeAngleThreshold, "Angular difference for the segment merge pass in radians")
	ransacDelta := flag.Float64("ransac-delta", scanfit.DefaultRANSACDelta, "RANSAC inlier distance in meters")
	ransacIters := flag.Int("ransac-iters", scanfit.DefaultRANSACIterations, "RANSAC sampling trials per fit")
	scoreThreshold := flag.Float64("score-threshold", 0.8, "Minimum inlier fraction to accept a RANSAC fit")

	// Rendering
	htmlPath := flag.String("html", "", "Write an interactive HTML report to this path")
	pngPath := flag.String("png", "", "Write a PNG rendering to this path")

	// Persistence
	dbPath := flag.String("db", "", "Sqlite database for saving scans and fits")
	label := flag.String("label", "", "Label stored with the scan")
	list := flag.Bool("list", false, "List stored scans and exit")
	replay := flag.String("replay", "", "Refit the stored scan with this id instead of reading input")

	// Logging
	verbose := flag.Bool("v", false, "Log per-fit diagnostics to stderr")
	trace := flag.Bool("vv", false, "Log per-iteration fit internals to stderr")

	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("[scanfit] ")

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	switch {
	case *trace:
		scanfit.SetLogWriters(scanfit.LogWriters{Ops: os.Stderr, Diag: os.Stderr, Trace: os.Stderr})
	case *verbose:
		scanfit.SetLogWriters(scanfit.LogWriters{Ops: os.Stderr, Diag: os.Stderr})
	default:
		scanfit.SetLogWriters(scanfit.LogWriters{Ops: os.Stderr})
	}

	var store *scanstore.Store
	if *dbPath != "" {
		var err error
		store, err = scanstore.Open(*dbPath)
		if err != nil {
			log.Fatalf("opening database: %v", err)
		}
		defer store.Close()
	}

	if *list {
		if store == nil {
			log.Fatal("-list requires -db")
		}
		scans, err := store.ListScans()
		if err != nil {
			log.Fatalf("listing scans: %v", err)
		}
		for _, s := range scans {
			created := time.Unix(0, s.CreatedAtNs).UTC().Format(time.RFC3339)
			fmt.Printf("%s  %s  %5d points  %s\n", s.ID, created, s.PointCount, s.Label)
		}
		return
	}

	var points []geom.Point
	scanID := ""
	scanLabel := *label
	switch {
	case *replay != "":
		if store == nil {
			log.Fatal("-replay requires -db")
		}
		scan, pts, err := store.GetScan(*replay)
		if err != nil {
			log.Fatalf("loading scan: %v", err)
		}
		points = pts
		scanID = scan.ID
		if scanLabel == "" {
			scanLabel = scan.Label
		}
	case *input != "":
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("opening input: %v", err)
		}
		points, err = readPointsCSV(f)
		f.Close()
		if err != nil {
			log.Fatalf("reading %s: %v", *input, err)
		}
		points = scanfit.SortByBearing(points, *orderOffset)
		if scanLabel == "" {
			scanLabel = filepath.Base(*input)
		}
	case *synthetic != "":
		src := randv2.NewPCG(uint64(*seed), uint64(*seed))
		pts, err := scansim.Generate(*synthetic, *n, *noise, src)
		if err != nil {
			log.Fatalf("generating scene: %v", err)
		}
		points = pts
		if scanLabel == "" {
			scanLabel = *synthetic
		}
	default:
		log.Fatal("one of -input, -synthetic, -replay or -list is required")
	}

	clusters := scanfit.ClusterOrderedPoints(points, scanfit.ClusterParams{
		DistThreshold:  *clusterDist,
		MinClusterSize: *minCluster,
	})

	cfg := fitConfig{
		algo:           *algo,
		regThreshold:   *regThreshold,
		scoreThreshold: *scoreThreshold,
		ransac: scanfit.RANSACParams{
			Delta:      *ransacDelta,
			Iterations: *ransacIters,
			Rand:       rand.New(rand.NewSource(*seed)),
		},
		merge: scanfit.MergeParams{
			DistThreshold:  *mergeDist,
			AngleThreshold: *mergeAngle,
			PerpThreshold:  scanfit.DefaultMergePerpThreshold,
		},
	}
	segments, circles, scores, err := fitClusters(clusters, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("%d points, %d clusters, %d segments, %d circles\n", len(points), len(clusters), len(segments), len(circles))
	for i, s := range segments {
		fmt.Printf("segment %d: (%.3f, %.3f) -> (%.3f, %.3f) length %.3f\n", i, s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.Length())
	}
	for i, c := range circles {
		fmt.Printf("circle %d: center (%.3f, %.3f) radius %.3f score %.2f\n", i, c.Center.X, c.Center.Y, c.Radius, scores[i])
	}

	if *htmlPath != "" {
		page := scanreport.BuildPage(scanLabel, points, clusters, segments, circles)
		if err := scanreport.WriteHTML(*htmlPath, page); err != nil {
			log.Fatalf("writing HTML report: %v", err)
		}
		fmt.Printf("wrote %s\n", *htmlPath)
	}
	if *pngPath != "" {
		plotSegments := append([]geom.LineSegment(nil), segments...)
		for _, c := range circles {
			plotSegments = append(plotSegments, scanplot.SegmentsFromCircle(c, 64)...)
		}
		if err := scanplot.RenderClustersPNG(*pngPath, clusters, plotSegments); err != nil {
			log.Fatalf("writing PNG: %v", err)
		}
		fmt.Printf("wrote %s\n", *pngPath)
	}

	if store != nil {
		if scanID == "" {
			id, err := store.SaveScan(scanLabel, points)
			if err != nil {
				log.Fatalf("saving scan: %v", err)
			}
			scanID = id
			fmt.Printf("saved scan %s\n", scanID)
		}
		params := fitParams{
			ClusterDist:    *clusterDist,
			MinCluster:     *minCluster,
			RegThreshold:   *regThreshold,
			MergeDist:      *mergeDist,
			MergeAngle:     *mergeAngle,
			RANSACDelta:    *ransacDelta,
			RANSACIters:    *ransacIters,
			ScoreThreshold: *scoreThreshold,
			Seed:           *seed,
		}
		var fitID string
		if *algo == "circle" {
			fitID, err = store.SaveCircleFit(scanID, params, circles, scores)
		} else {
			fitID, err = store.SaveFit(scanID, *algo, params, segments)
		}
		if err != nil {
			log.Fatalf("saving fit: %v", err)
		}
		fmt.Printf("saved fit %s\n", fitID)
	}
}
