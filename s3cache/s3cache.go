/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache implements httpcache.Cache on top of an Amazon S3 bucket.
 * Derived from github.com/sourcegraph/s3cache, ported to aws-sdk-go-v2.
 * The ratingsbot uses it as the backing store for its web cache so that
 * repeated FIDE lookups across runs don't hammer the upstream service.
 */
package s3cache

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const keyPrefix = "webcache"

// Cache stores and retrieves cache entries as S3 objects.
type Cache struct {
	// Config is the AWS configuration loaded during Init.
	Config aws.Config

	// Client is the s3 client used for bucket operations. Init sets it from
	// Config; callers may override it before use.
	Client *s3.Client

	bucketName string
	ctx        context.Context
}

// New returns a Cache backed by the named S3 bucket. Callers must invoke
// Init() on the returned Cache before use.
func New(ctx context.Context, bucketName string) *Cache {
	return &Cache{
		ctx:        ctx,
		bucketName: bucketName,
	}
}

// Init loads AWS configuration from the default sources (environment
// variables, shared config/credentials files) and verifies the bucket is
// accessible.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}
	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		// NoSuchKey just indicates a cache miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			log.Printf("s3cache.get: failed to get object %v/%v: %v",
				c.bucketName, objectKey(key), err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("s3cache.get: failed to read object %v/%v: %v",
			c.bucketName, objectKey(key), err)
		return nil, false
	}

	return data, true
}

func (c *Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		log.Printf("s3cache.set: put failed for %v/%v: %v", c.bucketName,
			objectKey(key), err)
	}
}

func (c *Cache) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey(key)),
	}

	if _, err := c.Client.DeleteObject(c.ctx, input); err != nil {
		log.Printf("s3cache.delete: delete failed: %v", err)
	}
}

// objectKey hashes the cache key (a URL) so arbitrary characters never leak
// into S3 object names.
func objectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return fmt.Sprintf("%v/%v", keyPrefix, hex.EncodeToString(h.Sum(nil)))
}
