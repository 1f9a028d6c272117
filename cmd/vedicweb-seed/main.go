// vedicweb-seed loads posts and panchang entries from a YAML seed file into
// the content store through its mutation API. Cover images referenced by the
// seed file are downscaled and re-encoded before upload so the store never
// receives oversized originals.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/image/draw"
	"gopkg.in/yaml.v3"

	vedicweb "github.com/vedicsages/vedicweb"
)

const (
	maxCoverWidth = 1600
	jpegQuality   = 85
)

type seedFile struct {
	Posts    []seedPost     `yaml:"posts"`
	Panchang []seedPanchang `yaml:"panchang"`
}

type seedPost struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Excerpt     string   `yaml:"excerpt"`
	Category    string   `yaml:"category"`
	Author      string   `yaml:"author"`
	PublishedAt string   `yaml:"publishedAt"`
	Image       string   `yaml:"image"` // local path or http(s) URL
	Paragraphs  []string `yaml:"paragraphs"`
}

type seedPanchang struct {
	Date         string `yaml:"date"`
	Tithi        string `yaml:"tithi"`
	Vara         string `yaml:"vara"`
	Nakshatra    string `yaml:"nakshatra"`
	Yoga         string `yaml:"yoga"`
	Karana       string `yaml:"karana"`
	Sunrise      string `yaml:"sunrise"`
	Sunset       string `yaml:"sunset"`
	SpecialEvent string `yaml:"specialEvent"`
}

func main() {
	_ = godotenv.Load()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		file    = flag.String("file", "seed.yaml", "seed file to load")
		dryRun  = flag.Bool("dry-run", false, "print mutations without sending them")
		timeout = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()

	projectID := vedicweb.MustEnv("CONTENT_PROJECT_ID")
	dataset := vedicweb.EnvOr("CONTENT_DATASET", "production")
	token := vedicweb.MustEnv("CONTENT_WRITE_TOKEN")

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Error("read seed file", "error", err)
		os.Exit(1)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		log.Error("parse seed file", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := &mutateClient{
		projectID: projectID,
		dataset:   dataset,
		token:     token,
		http:      &http.Client{Timeout: 30 * time.Second},
		dryRun:    *dryRun,
		log:       log,
	}

	var mutations []map[string]any
	for _, post := range seed.Posts {
		doc, err := client.buildPostDoc(ctx, post)
		if err != nil {
			log.Error("build post", "slug", post.Slug, "error", err)
			os.Exit(1)
		}
		mutations = append(mutations, map[string]any{"createOrReplace": doc})
	}
	for _, pn := range seed.Panchang {
		mutations = append(mutations, map[string]any{"createOrReplace": map[string]any{
			"_id":          "panchang-" + pn.Date,
			"_type":        "panchang",
			"date":         pn.Date,
			"tithi":        pn.Tithi,
			"vara":         pn.Vara,
			"nakshatra":    pn.Nakshatra,
			"yoga":         pn.Yoga,
			"karana":       pn.Karana,
			"sunrise":      pn.Sunrise,
			"sunset":       pn.Sunset,
			"specialEvent": pn.SpecialEvent,
		}})
	}

	if err := client.mutate(ctx, mutations); err != nil {
		log.Error("apply mutations", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete", "posts", len(seed.Posts), "panchang", len(seed.Panchang))
}

type mutateClient struct {
	projectID string
	dataset   string
	token     string
	http      *http.Client
	dryRun    bool
	log       *slog.Logger
}

func (c *mutateClient) baseURL() string {
	return "https://" + c.projectID + ".api.sanity.io/v2024-01-01"
}

func (c *mutateClient) buildPostDoc(ctx context.Context, post seedPost) (map[string]any, error) {
	slug := post.Slug
	if slug == "" {
		slug = vedicweb.Slugify(post.Title)
	}

	body := make([]map[string]any, 0, len(post.Paragraphs))
	for _, para := range post.Paragraphs {
		body = append(body, map[string]any{
			"_key":  uuid.NewString(),
			"_type": "block",
			"style": "normal",
			"children": []map[string]any{
				{"_key": uuid.NewString(), "_type": "span", "text": para},
			},
		})
	}

	doc := map[string]any{
		"_id":         "post-" + slug,
		"_type":       "post",
		"title":       post.Title,
		"slug":        map[string]any{"_type": "slug", "current": slug},
		"excerpt":     post.Excerpt,
		"category":    post.Category,
		"author":      post.Author,
		"publishedAt": post.PublishedAt,
		"body":        body,
	}

	if post.Image != "" {
		ref, err := c.uploadCover(ctx, post.Image)
		if err != nil {
			return nil, fmt.Errorf("upload cover: %w", err)
		}
		if ref != "" {
			doc["image"] = map[string]any{
				"_type": "image",
				"asset": map[string]any{"_type": "reference", "_ref": ref},
			}
		}
	}
	return doc, nil
}

// uploadCover fetches the image, downscales it, and uploads it as an asset.
// Returns the asset reference id.
func (c *mutateClient) uploadCover(ctx context.Context, source string) (string, error) {
	data, err := c.readImage(ctx, source)
	if err != nil {
		return "", err
	}
	processed, err := processCover(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if c.dryRun {
		c.log.Info("dry run: skipping asset upload", "source", source, "bytes", len(processed))
		return "", nil
	}

	url := c.baseURL() + "/assets/images/" + c.dataset + "?filename=" + filepath.Base(source)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(processed))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("asset upload failed: %s: %s", resp.Status, body)
	}

	var out struct {
		Document struct {
			ID string `json:"_id"`
		} `json:"document"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Document.ID, nil
}

func (c *mutateClient) readImage(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch image: %s", resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	}
	return os.ReadFile(source)
}

// processCover decodes an image, resizes it down to maxCoverWidth when
// wider, and re-encodes it as JPEG.
func processCover(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *mutateClient) mutate(ctx context.Context, mutations []map[string]any) error {
	payload, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return err
	}
	if c.dryRun {
		fmt.Println(string(payload))
		return nil
	}

	url := c.baseURL() + "/data/mutate/" + c.dataset
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mutate failed: %s: %s", resp.Status, body)
	}
	return nil
}
