package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	gocache "github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel"

	"guildbadge"
	"guildbadge/internal/domain"
)

var tracer = otel.Tracer("assets")

const jpegQuality = 80

// flattenBackground is the implicit backdrop that transparent pixels
// are composited against, since JPEG carries no alpha channel.
var flattenBackground = color.NRGBA{R: 0x23, G: 0x27, B: 0x2a, A: 0xff}

// Downloader fetches raw bytes by URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Pipeline downloads, transforms and re-encodes image assets. Results
// are cached for process lifetime keyed on (url, transform): the
// expensive step this cache exists to avoid is re-processing, and a
// fetched asset is treated as immutable.
type Pipeline struct {
	downloader Downloader
	cache      *gocache.Cache

	defaultBackgroundURL string
}

func NewPipeline(downloader Downloader, defaultBackgroundURL string) *Pipeline {
	return &Pipeline{
		downloader:           downloader,
		cache:                gocache.New(gocache.NoExpiration, 0),
		defaultBackgroundURL: defaultBackgroundURL,
	}
}

func cacheKey(ref guildbadge.AssetRef) string {
	t := ref.Transform
	h := xxh3.HashString(fmt.Sprintf("%s\x1f%d\x1f%d\x1f%g\x1f%g",
		ref.SourceURL, t.TargetWidth, t.TargetHeight, t.BlurRadius, t.DimFactor))
	return strconv.FormatUint(h, 16)
}

// Get returns the encoded asset for ref. It never fails: any download
// or decode problem degrades to an empty asset sized to the requested
// target so the renderer can leave the region blank.
func (p *Pipeline) Get(ctx context.Context, ref guildbadge.AssetRef) guildbadge.EncodedAsset {
	ctx, span := tracer.Start(ctx, "Assets.Pipeline.Get")
	defer span.End()

	if ref.SourceURL == "" {
		return emptyAsset(ref.Transform)
	}

	key := cacheKey(ref)
	if cached, found := p.cache.Get(key); found {
		return cached.(guildbadge.EncodedAsset)
	}

	asset, err := p.fetch(ctx, ref)
	if err != nil {
		span.RecordError(err)
		slog.Warn("asset degraded to empty", "url", ref.SourceURL, "error", err)
		return emptyAsset(ref.Transform)
	}

	p.cache.Set(key, asset, gocache.NoExpiration)
	return asset
}

// GetBackground behaves like Get but substitutes the configured
// default background once when the requested source fails. The
// substitution applies to the background role only.
func (p *Pipeline) GetBackground(ctx context.Context, ref guildbadge.AssetRef) guildbadge.EncodedAsset {
	asset := p.Get(ctx, ref)
	if !asset.Empty() {
		return asset
	}
	if p.defaultBackgroundURL == "" || ref.SourceURL == p.defaultBackgroundURL {
		return asset
	}
	fallback := ref
	fallback.SourceURL = p.defaultBackgroundURL
	return p.Get(ctx, fallback)
}

func (p *Pipeline) fetch(ctx context.Context, ref guildbadge.AssetRef) (guildbadge.EncodedAsset, error) {
	data, err := p.downloader.Download(ctx, ref.SourceURL)
	if err != nil {
		return guildbadge.EncodedAsset{}, err
	}
	return transform(data, ref.Transform)
}

func transform(data []byte, spec guildbadge.TransformSpec) (guildbadge.EncodedAsset, error) {

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return guildbadge.EncodedAsset{}, domain.DecodeFailure("image decode failed", err)
	}

	// JPEG output has no alpha, so flatten first.
	bounds := src.Bounds()
	img := imaging.New(bounds.Dx(), bounds.Dy(), flattenBackground)
	img = imaging.Overlay(img, src, image.Pt(0, 0), 1.0)

	if spec.TargetWidth > 0 {
		img = imaging.Resize(img, spec.TargetWidth, spec.TargetHeight, imaging.Lanczos)
	}
	if spec.BlurRadius > 0 {
		img = imaging.Blur(img, spec.BlurRadius)
	}
	if spec.DimFactor > 0 && spec.DimFactor < 1 {
		scale := 1 - spec.DimFactor
		img = imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			c.R = uint8(float64(c.R) * scale)
			c.G = uint8(float64(c.G) * scale)
			c.B = uint8(float64(c.B) * scale)
			return c
		})
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return guildbadge.EncodedAsset{}, domain.DecodeFailure("image encode failed", err)
	}

	out := img.Bounds()
	return guildbadge.EncodedAsset{
		DataURI: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   out.Dx(),
		Height:  out.Dy(),
	}, nil
}

func emptyAsset(spec guildbadge.TransformSpec) guildbadge.EncodedAsset {
	height := spec.TargetHeight
	if height == 0 {
		height = spec.TargetWidth
	}
	return guildbadge.EncodedAsset{Width: spec.TargetWidth, Height: height}
}
