// Package spaces sube y elimina archivos en Digital Ocean Spaces a
// través de la API de S3. Aplica su propia lista de tipos MIME y el
// límite de tamaño, independiente de las validaciones del endpoint
// HTTP (defensa en profundidad).
package spaces

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/peopleflow/peopleflow/internal/config"
)

// MaxFileSize es el tamaño máximo aceptado para un CV.
const MaxFileSize = 10 * 1024 * 1024 // 10MB

// AllowedMimeTypes son los formatos de documento aceptados para CVs.
var AllowedMimeTypes = []string{
	"application/pdf",
	"application/msword", // .doc
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document", // .docx
}

// MimeAllowed informa si el tipo MIME está en la lista permitida.
func MimeAllowed(mimeType string) bool {
	for _, m := range AllowedMimeTypes {
		if m == mimeType {
			return true
		}
	}
	return false
}

type Client struct {
	s3       *s3.Client
	bucket   string
	endpoint string
}

// New construye el cliente contra el endpoint de Spaces. Si el
// endpoint configurado incluye el bucket como subdominio, se remueve
// para usar direccionamiento path-style.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	endpoint, err := baseEndpoint(cfg.SpacesEndpoint, cfg.SpacesBucket)
	if err != nil {
		return nil, fmt.Errorf("spaces endpoint: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.SpacesRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SpacesKey, cfg.SpacesSecret, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client, bucket: cfg.SpacesBucket, endpoint: endpoint}, nil
}

// Upload valida el archivo, lo sube bajo folder y devuelve su URL
// pública.
func (c *Client) Upload(ctx context.Context, fileName, mimeType string, data []byte, folder string) (string, error) {
	if !MimeAllowed(mimeType) {
		return "", fmt.Errorf("Tipo de archivo no permitido: %s. Tipos permitidos: PDF, Word (.doc, .docx)", mimeType)
	}
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("El archivo excede el tamaño máximo permitido de 10MB")
	}

	key := uniqueKey(fileName, folder)

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	// Con path-style la URL pública es endpoint/bucket/key.
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key), nil
}

// Delete elimina el objeto referido por su URL pública.
func (c *Client) Delete(ctx context.Context, fileURL string) error {
	key, err := c.keyFromURL(fileURL)
	if err != nil {
		return err
	}
	_, err = c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (c *Client) keyFromURL(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) > 0 && parts[0] == c.bucket {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("url sin key: %s", fileURL)
	}
	return strings.Join(parts, "/"), nil
}

// baseEndpoint remueve el bucket del hostname:
// peopleflowcandidates.sfo3.digitaloceanspaces.com -> sfo3.digitaloceanspaces.com
func baseEndpoint(endpoint, bucket string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(u.Hostname(), bucket+".")
	return u.Scheme + "://" + host, nil
}

func uniqueKey(fileName, folder string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	return fmt.Sprintf("%s/%d-%s.%s", folder, time.Now().UnixMilli(), uuid.New(), ext)
}
