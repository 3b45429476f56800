package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// ErrComunicacion indica una respuesta malformada del servidor. Nunca
// se filtra el cuerpo crudo de la respuesta al usuario.
var ErrComunicacion = errors.New("Error de comunicación con el servidor. Por favor intenta nuevamente.")

// Client sube archivos al endpoint /api/upload-cv con un cuerpo
// multipart y espera una respuesta JSON {success, file} o
// {success:false, error}.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	File    struct {
		ID       string `json:"id"`
		FileName string `json:"fileName"`
		FileURL  string `json:"fileUrl"`
		FileSize int64  `json:"fileSize"`
		MimeType string `json:"mimeType"`
	} `json:"file"`
}

func (c *Client) Upload(ctx context.Context, f File) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// El servidor valida el Content-Type de la parte, así que se envía
	// el tipo real del archivo en lugar del octet-stream por omisión.
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	if f.MimeType != "" {
		header.Set("Content-Type", f.MimeType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", ErrComunicacion
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrComunicacion
	}

	// Una página HTML de error jamás debe llegar al usuario tal cual.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return "", ErrComunicacion
	}

	var result uploadResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", ErrComunicacion
	}

	if resp.StatusCode >= 300 || !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "Error al subir el CV"
		}
		return "", errors.New(msg)
	}

	return result.File.ID, nil
}
