// Package report exports the no-show follow-up list.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/view"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// NoShowColumns is the CSV header.
var NoShowColumns = []string{"date", "time", "patient", "doctor", "reason", "action_status"}

func actionLabel(a model.ActionStatus) string {
	if a == model.ActionNone {
		return "Open"
	}
	return string(a)
}

// WriteNoShowCSV writes the no-shows among appts, sorted by date and time.
// Doctor names are resolved through dir.
func WriteNoShowCSV(w io.Writer, appts []model.Appointment, dir view.DoctorDirectory) error {
	rows := view.NewPipeline[model.Appointment]()
	rows.Replace(view.WithDoctorNames(appts, dir))
	rows.SetFilter("status", view.StatusIn(model.StatusNoShow))
	rows.SortBy(view.ByDateTime)

	cw := csv.NewWriter(w)
	if err := cw.Write(NoShowColumns); err != nil {
		return err
	}
	for _, a := range rows.Visible() {
		rec := []string{a.Date, a.Time, a.PatientName, a.DoctorName, a.Reason, actionLabel(a.ActionStatus)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ObjectPutter is the part of the S3 client the uploader uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores exported reports in a bucket.
type S3Uploader struct {
	client ObjectPutter
	bucket string
}

func NewS3Uploader(client ObjectPutter, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket}
}

// NoShowKey names the object of a no-show export for date.
func NoShowKey(date string) string {
	return fmt.Sprintf("no-shows/%s-%s.csv", date, uuid.NewString())
}

// UploadNoShows stores a CSV export and returns its key.
func (u *S3Uploader) UploadNoShows(ctx context.Context, date string, data []byte) (string, error) {
	key := NoShowKey(date)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to s3://%s: %w", key, u.bucket, err)
	}
	return key, nil
}
