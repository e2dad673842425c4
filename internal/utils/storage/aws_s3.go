package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Goutham-IITJ/Project-Raseed/internal/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type awsS3 struct {
	client *s3.Client
	bucket string
	region string
}

// NewAwsS3 builds an S3-backed provider from the AWS_* config keys.
func NewAwsS3() (Provider, error) {
	region := utils.GetConfig("AWS_S3_REGION")
	bucket := utils.GetConfig("AWS_S3_BUCKET")

	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (a *awsS3) objectKey(userEmail, fileName string) string {
	return userEmail + "/" + fileName
}

func (a *awsS3) Upload(userEmail string, fileName string, data []byte, contentType string) (string, error) {
	key := a.objectKey(userEmail, fileName)
	_, err := a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (a *awsS3) Delete(userEmail string, fileName string) error {
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.objectKey(userEmail, fileName)),
	})
	return err
}

func (a *awsS3) PublicLink(userEmail string, fileName string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, a.objectKey(userEmail, fileName))
}
