// Command shadow_compare replays read requests against the tracker API and
// the legacy tracker and reports where status codes or bodies diverge.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
	// Ignore lists object keys excluded from body comparison.
	Ignore []string `json:"ignore"`
}

// defaultIgnored are stamped at write time and differ between two
// independently seeded stores.
var defaultIgnored = []string{"created_at", "updated_at", "generated_at"}

type fetched struct {
	status   int
	body     []byte
	duration time.Duration
}

type comparison struct {
	Target      target
	Tracker     fetched
	Legacy      fetched
	StatusMatch bool
	BodyMatch   bool
	Err         error
}

func (c comparison) verdict() string {
	switch {
	case c.Err != nil:
		return "ERROR"
	case !c.StatusMatch || !c.BodyMatch:
		return "DIFF"
	default:
		return "OK"
	}
}

type comparer struct {
	client      *http.Client
	trackerBase string
	legacyBase  string
	ignored     map[string]struct{}
}

func main() {
	var (
		trackerBase string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)
	flag.StringVar(&trackerBase, "tracker", "http://localhost:8080", "tracker API base URL")
	flag.StringVar(&legacyBase, "legacy", "http://localhost:8000", "legacy tracker base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.Parse()

	file, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("load targets: %v", err)
	}

	cmp := &comparer{
		client:      &http.Client{Timeout: timeout},
		trackerBase: trackerBase,
		legacyBase:  legacyBase,
		ignored:     ignoreSet(file.Ignore),
	}

	ctx := context.Background()
	results := make([]comparison, 0, len(file.Targets))
	breaking, optional := 0, 0
	for _, tgt := range file.Targets {
		res := cmp.compare(ctx, tgt)
		if res.verdict() != "OK" {
			if tgt.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(os.Stdout, results)
	fmt.Printf("\nbreaking diffs: %d, optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) (targetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return targetFile{}, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return targetFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Targets) == 0 {
		return targetFile{}, fmt.Errorf("no targets defined in %s", path)
	}
	return file, nil
}

func ignoreSet(extra []string) map[string]struct{} {
	out := make(map[string]struct{}, len(defaultIgnored)+len(extra))
	for _, key := range defaultIgnored {
		out[key] = struct{}{}
	}
	for _, key := range extra {
		out[key] = struct{}{}
	}
	return out
}

// compare issues tgt against both services concurrently.
func (c *comparer) compare(ctx context.Context, tgt target) comparison {
	res := comparison{Target: tgt}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := c.fetch(gctx, c.trackerBase, tgt)
		if err != nil {
			return fmt.Errorf("tracker: %w", err)
		}
		res.Tracker = f
		return nil
	})
	g.Go(func() error {
		f, err := c.fetch(gctx, c.legacyBase, tgt)
		if err != nil {
			return fmt.Errorf("legacy: %w", err)
		}
		res.Legacy = f
		return nil
	})
	if err := g.Wait(); err != nil {
		res.Err = err
		return res
	}

	res.StatusMatch = res.Tracker.status == res.Legacy.status
	res.BodyMatch = bodiesEqual(res.Tracker.body, res.Legacy.body, c.ignored)
	return res
}

func (c *comparer) fetch(ctx context.Context, base string, tgt target) (fetched, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return fetched{}, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fetched{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetched{}, fmt.Errorf("read body: %w", err)
	}
	return fetched{status: resp.StatusCode, body: body, duration: time.Since(start)}, nil
}

// bodiesEqual compares two payloads as JSON documents, dropping ignored
// keys at any depth. Non-JSON bodies must match byte for byte.
func bodiesEqual(a, b []byte, ignored map[string]struct{}) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var av, bv interface{}
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return false
	}
	return reflect.DeepEqual(strip(av, ignored), strip(bv, ignored))
}

func strip(v interface{}, ignored map[string]struct{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			if _, skip := ignored[k]; skip {
				continue
			}
			out[k] = strip(inner, ignored)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = strip(inner, ignored)
		}
		return out
	default:
		return v
	}
}

func printReport(w io.Writer, results []comparison) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RESULT\tMETHOD\tPATH\tTRACKER\tLEGACY\tBODY\tCRITICAL")
	for _, res := range results {
		method := res.Target.Method
		if method == "" {
			method = http.MethodGet
		}
		if res.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t-\t-\t%v\t%t\n", res.verdict(), method, res.Target.Path, res.Err, res.Target.Critical)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d (%s)\t%d (%s)\t%t\t%t\n",
			res.verdict(), method, res.Target.Path,
			res.Tracker.status, res.Tracker.duration.Round(time.Millisecond),
			res.Legacy.status, res.Legacy.duration.Round(time.Millisecond),
			res.BodyMatch, res.Target.Critical)
	}
	_ = tw.Flush()
}
