package spaces

import (
	"context"
	"errors"
	"path"

	"github.com/DMarby/utility-docs/internal/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Config configures where the content documents live
type Config struct {
	Space     string
	Prefix    string // Documents are read from <Prefix>/<name>
	Endpoint  string // e.g. https://ams3.digitaloceanspaces.com
	AccessKey string
	SecretKey string
	// ForcePathStyle uses path style addressing, for s3 compatible stores like minio
	ForcePathStyle bool
}

// Provider reads content documents from a digitalocean space
type Provider struct {
	client *s3.S3
	space  string
	prefix string
}

// New returns a new Provider instance, after checking that the space can be reached
func New(ctx context.Context, config Config) (*Provider, error) {
	if config.Space == "" {
		return nil, errors.New("no space configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String("us-east-1"), // Spaces only accepts us-east-1
		S3ForcePathStyle: aws.Bool(config.ForcePathStyle),
	})
	if err != nil {
		return nil, err
	}

	client := s3.New(sess)

	_, err = client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(config.Space),
	})
	if err != nil {
		return nil, err
	}

	return &Provider{
		client: client,
		space:  config.Space,
		prefix: config.Prefix,
	}, nil
}

// Get returns the contents of a document
func (p *Provider) Get(ctx context.Context, name string) ([]byte, error) {
	output, err := p.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.space),
		Key:    aws.String(path.Join(p.prefix, name)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}
	defer output.Body.Close()

	if output.ContentLength != nil && *output.ContentLength > storage.MaxDocumentSize {
		return nil, storage.ErrTooLarge
	}

	return storage.ReadDocument(output.Body)
}
