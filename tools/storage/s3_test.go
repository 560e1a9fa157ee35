package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	getErr  error
	putErr  error
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func TestS3DatasetState(t *testing.T) {
	client := newFakeS3()
	client.objects["artifacts/mock_data.json"] = []byte(`{"users":[]}`)

	b, err := NewS3DatasetState(client, "artifacts", "mock_data.json").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(b))

	_, err = NewS3DatasetState(client, "artifacts", "other.json").Load(context.Background())
	assert.ErrorContains(t, err, "failed to get dataset object from S3")
}

func TestS3PreferenceLog(t *testing.T) {
	t.Run("appends across calls", func(t *testing.T) {
		client := newFakeS3()
		log := NewS3PreferenceLog(client, "artifacts", "user_prefs.json")

		location, err := log.Append(context.Background(), Preference{Item: "soda", PreferenceType: "avoid"})
		require.NoError(t, err)
		assert.Equal(t, "s3://artifacts/user_prefs.json", location)

		_, err = log.Append(context.Background(), Preference{Item: "tea", PreferenceType: "like"})
		require.NoError(t, err)

		var got []Preference
		require.NoError(t, json.Unmarshal(client.objects["artifacts/user_prefs.json"], &got))
		assert.Equal(t, []Preference{
			{Item: "soda", PreferenceType: "avoid"},
			{Item: "tea", PreferenceType: "like"},
		}, got)
	})

	t.Run("keeps existing entries of any shape", func(t *testing.T) {
		client := newFakeS3()
		client.objects["artifacts/user_prefs.json"] = []byte(`["legacy note",{"item":"a","preference_type":"like","notes":5,"ts":1}]`)
		log := NewS3PreferenceLog(client, "artifacts", "user_prefs.json")

		_, err := log.Append(context.Background(), Preference{Item: "tea", PreferenceType: "like"})
		require.NoError(t, err)

		assert.JSONEq(t,
			`["legacy note",{"item":"a","preference_type":"like","notes":5,"ts":1},{"item":"tea","preference_type":"like","notes":""}]`,
			string(client.objects["artifacts/user_prefs.json"]))
	})

	t.Run("get failure other than missing key", func(t *testing.T) {
		client := newFakeS3()
		client.getErr = errors.New("access denied")
		_, err := NewS3PreferenceLog(client, "artifacts", "user_prefs.json").Append(context.Background(), Preference{Item: "tea"})
		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("put failure", func(t *testing.T) {
		client := newFakeS3()
		client.putErr = errors.New("throttled")
		_, err := NewS3PreferenceLog(client, "artifacts", "user_prefs.json").Append(context.Background(), Preference{Item: "tea"})
		assert.ErrorContains(t, err, "failed to put preferences object to S3")
	})
}
