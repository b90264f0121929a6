// Package publish exports painted pages to S3.
//
//	client, err := publish.NewClient(ctx, cfg.Publish.Region)
//	p, err := publish.New(client, cfg.Publish.Bucket, cfg.Publish.Prefix)
//	obj, err := p.PublishTemplate(ctx, eng, "docs/intro.html", src, params)
package publish

import (
	"bytes"
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/pkg/engine"
	"github.com/vango-dev/craft/pkg/render"
	"github.com/vango-dev/craft/pkg/tmpl"
)

// ContentType is set on every uploaded page.
const ContentType = "text/html; charset=utf-8"

// PutObjectAPI is the part of the S3 client used here.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewClient creates an S3 client from the default AWS configuration. An
// empty region keeps the region from the environment.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("C050").Wrap(err).WithDetail("Failed to load AWS configuration: " + err.Error())
	}
	return s3.NewFromConfig(cfg), nil
}

// Object describes an uploaded page.
type Object struct {
	Bucket string
	Key    string
	Size   int
}

// URI returns the s3:// location.
func (o Object) URI() string {
	return "s3://" + o.Bucket + "/" + o.Key
}

// Publisher uploads pages under a bucket prefix.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithTracer sets the tracer. Defaults to the global "craft/publish"
// tracer.
func WithTracer(t trace.Tracer) Option {
	return func(p *Publisher) { p.tracer = t }
}

// New creates a Publisher. The bucket is required.
func New(client PutObjectAPI, bucket, prefix string, opts ...Option) (*Publisher, error) {
	if bucket == "" {
		return nil, errors.New("C050").
			WithDetail("No bucket configured").
			WithSuggestion(`Set "publish.bucket" in craft.json or pass --bucket`)
	}
	p := &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: slog.Default(),
		tracer: otel.Tracer("craft/publish"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Key returns the object key for a page name. Any extension on name is
// replaced with .html.
func (p *Publisher) Key(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, `\`, "/")), "/")
	name = strings.TrimSuffix(name, path.Ext(name)) + ".html"
	if p.prefix == "" {
		return name
	}
	return p.prefix + "/" + name
}

// Publish uploads html as the page called name.
func (p *Publisher) Publish(ctx context.Context, name string, html []byte) (Object, error) {
	obj := Object{Bucket: p.bucket, Key: p.Key(name), Size: len(html)}

	ctx, span := p.tracer.Start(ctx, "craft.publish",
		trace.WithAttributes(
			attribute.String("s3.bucket", obj.Bucket),
			attribute.String("s3.key", obj.Key),
			attribute.Int("craft.bytes", obj.Size),
		),
	)
	defer span.End()

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(obj.Bucket),
		Key:         aws.String(obj.Key),
		Body:        bytes.NewReader(html),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"source":       name,
			"publish-time": p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Object{}, errors.New("C050").Wrap(err).WithSubject(obj.URI()).WithDetail(err.Error())
	}
	span.SetStatus(codes.Ok, "")
	p.logger.Info("page published", "uri", obj.URI(), "bytes", obj.Size)
	return obj, nil
}

// PublishTemplate paints a template as a full page and uploads it.
func (p *Publisher) PublishTemplate(ctx context.Context, eng *engine.Engine, name, src string, params map[string]any) (Object, error) {
	html, err := RenderPage(eng, name, src, params)
	if err != nil {
		return Object{}, err
	}
	return p.Publish(ctx, name, html)
}

// RenderPage paints a template and renders it as a standalone document
// titled after name.
func RenderPage(eng *engine.Engine, name, src string, params map[string]any) ([]byte, error) {
	t, err := tmpl.CompileNamed(name, src)
	if err != nil {
		return nil, err
	}
	rs, err := eng.PaintTemplate(t, params)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	page := render.PageData{
		Title: strings.TrimSuffix(path.Base(name), path.Ext(name)),
		Body:  engine.Nodes(rs),
	}
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
