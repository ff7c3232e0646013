package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"testing"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/view"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNoShowCSV(t *testing.T) {
	appts := []model.Appointment{
		{Date: "2025-06-10", Time: "10:00", PatientName: "Jane Doe", DoctorID: "d1", Reason: "Cleaning", Status: model.StatusNoShow, ActionStatus: model.ActionRebooked},
		{Date: "2025-06-10", Time: "09:00", PatientName: "John Roe", DoctorID: "ghost", Status: model.StatusNoShow},
		{Date: "2025-06-10", Time: "08:00", PatientName: "Kept", DoctorID: "d1", Status: model.StatusCompleted},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteNoShowCSV(&buf, appts, view.DoctorDirectory{"d1": "Ana Lima"}))

	want := "date,time,patient,doctor,reason,action_status\n" +
		"2025-06-10,09:00,John Roe,Unknown,,Open\n" +
		"2025-06-10,10:00,Jane Doe,Ana Lima,Cleaning,Rebooked\n"
	assert.Equal(t, want, buf.String())
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUploadNoShows(t *testing.T) {
	fake := &fakePutter{}
	u := NewS3Uploader(fake, "clinic-reports")

	key, err := u.UploadNoShows(context.Background(), "2025-06-10", []byte("csv"))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^no-shows/2025-06-10-[0-9a-f-]{36}\.csv$`), key)
	assert.Equal(t, "clinic-reports", aws.ToString(fake.in.Bucket))
	assert.Equal(t, key, aws.ToString(fake.in.Key))
	assert.Equal(t, "text/csv", aws.ToString(fake.in.ContentType))
	assert.Equal(t, []byte("csv"), fake.body)
}

func TestUploadNoShowsWrapsError(t *testing.T) {
	u := NewS3Uploader(&fakePutter{err: errors.New("denied")}, "clinic-reports")
	_, err := u.UploadNoShows(context.Background(), "2025-06-10", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://clinic-reports")
}
