package textract

import (
    "context"
    "fmt"
    "io"
    "strings"

    "github.com/aws/aws-sdk-go-v2/config"
    "github.com/aws/aws-sdk-go-v2/credentials"
    "github.com/aws/aws-sdk-go-v2/service/textract"
    "github.com/aws/aws-sdk-go-v2/service/textract/types"

    "github.com/feichai0017/resume-parser/internal/models"
    "github.com/feichai0017/resume-parser/pkg/logger"
)

// API is the slice of the Textract client the processor uses.
type API interface {
    DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

type Config struct {
    Region        string
    AccessKey     string
    SecretKey     string
    MinConfidence float32
}

// Processor runs OCR on scanned PDFs through AWS Textract. It is only used
// as a fallback when the PDF has no text layer.
type Processor struct {
    client API
    logger logger.Logger
    config *Config
}

func NewProcessor(ctx context.Context, cfg *Config, log logger.Logger) (*Processor, error) {
    opts := []func(*config.LoadOptions) error{
        config.WithRegion(cfg.Region),
    }
    if cfg.AccessKey != "" {
        opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
            cfg.AccessKey,
            cfg.SecretKey,
            "",
        )))
    }

    awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
    if err != nil {
        return nil, fmt.Errorf("unable to load AWS config: %w", err)
    }

    return NewProcessorWithClient(textract.NewFromConfig(awsCfg), cfg, log), nil
}

// NewProcessorWithClient builds a processor around an existing client.
func NewProcessorWithClient(client API, cfg *Config, log logger.Logger) *Processor {
    return &Processor{
        client: client,
        logger: log,
        config: cfg,
    }
}

func (p *Processor) CanProcess(mimeType string) bool {
    return mimeType == models.MimeTypePDF
}

// Process sends the document to Textract and joins the detected lines.
func (p *Processor) Process(ctx context.Context, reader io.Reader) (string, error) {
    data, err := io.ReadAll(reader)
    if err != nil {
        return "", fmt.Errorf("failed to read file: %w", err)
    }

    result, err := p.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
        Document: &types.Document{
            Bytes: data,
        },
    })
    if err != nil {
        return "", fmt.Errorf("failed to detect document text: %w", err)
    }

    lines := p.lines(result.Blocks)
    p.logger.Info("Textract OCR completed",
        logger.Int("blocks", len(result.Blocks)),
        logger.Int("lines", len(lines)),
    )

    return strings.Join(lines, "\n"), nil
}

// lines keeps LINE blocks at or above the configured confidence.
func (p *Processor) lines(blocks []types.Block) []string {
    var texts []string
    for _, block := range blocks {
        if block.BlockType != types.BlockTypeLine || block.Text == nil {
            continue
        }
        if block.Confidence != nil && *block.Confidence < p.config.MinConfidence {
            continue
        }
        texts = append(texts, *block.Text)
    }
    return texts
}

func (p *Processor) Close() error {
    return nil
}
