package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/config"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
)

const (
	maxEdge     = 512
	webpQuality = 85
)

// Uploader normaliza fotos de perfil (redimensiona e reencoda em WebP)
// e as publica no bucket de mídia.
type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	client := s3.New(s3.Options{
		Region: cfg.AWSRegion,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKeyID,
				cfg.AWSSecretAccessKey,
				"",
			),
		),
	})

	return &Uploader{
		client:  client,
		bucket:  cfg.MediaBucket,
		baseURL: cfg.MediaBaseURL,
	}
}

// UploadProfessionalPhoto devolve a URL pública da foto processada.
func (u *Uploader) UploadProfessionalPhoto(
	ctx context.Context,
	professionalID string,
	r io.Reader,
) (string, error) {

	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_image")
	}

	resized := fitWithin(src, maxEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: webpQuality}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("professionals/%s.webp", professionalID)
	contentType := "image/webp"

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}

// fitWithin reduz a imagem para caber em max x max mantendo proporção;
// imagem menor que o limite passa intocada.
func fitWithin(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}

	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
