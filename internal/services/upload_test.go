package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngBytes(size int) []byte {
	return append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, size-len(pngHeader))...)
}

func TestUploadService_Store_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		mime    string
		wantErr error
	}{
		{name: "text file", data: []byte("hello"), mime: "text/plain", wantErr: ErrUnsupportedMediaType},
		{name: "mime checked before size", data: make([]byte, 6<<20), mime: "application/pdf", wantErr: ErrUnsupportedMediaType},
		{name: "mime longer than column", data: pngBytes(100), mime: "image/" + strings.Repeat("x", 100), wantErr: ErrUnsupportedMediaType},
		{name: "missing mime", data: pngBytes(100), mime: "", wantErr: ErrUnsupportedMediaType},
		{name: "too large", data: pngBytes(5<<20 + 1), mime: "image/png", wantErr: ErrPayloadTooLarge},
		{name: "empty", data: nil, mime: "image/png", wantErr: ErrNoFileProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No expectations: nothing may be written to disk or the store.
			files := NewMockFileStorage(ctrl)
			writer := NewMockUploadWriter(ctrl)
			kw := NewMockKafkaWriter(ctrl)

			svc := NewUploadService(files, writer, NewMockUploadReader(ctrl), kw, 0)
			upload, err := svc.Store(context.Background(), uuid.New(), tt.data, tt.mime, "a.txt")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, upload)
		})
	}
}

func TestUploadService_Store_ExactLimitAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := NewMockFileStorage(ctrl)
	writer := NewMockUploadWriter(ctrl)
	files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewUploadService(files, writer, NewMockUploadReader(ctrl), nil, 1024)
	assert.Equal(t, int64(1024), svc.MaxBytes())

	_, err := svc.Store(context.Background(), uuid.New(), pngBytes(1024), "image/png", "a.png")
	assert.NoError(t, err)
}

func TestUploadService_Store_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := NewMockFileStorage(ctrl)
	writer := NewMockUploadWriter(ctrl)
	kw := NewMockKafkaWriter(ctrl)

	svc := NewUploadService(files, writer, NewMockUploadReader(ctrl), kw, 0)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	userID := uuid.New()
	data := pngBytes(10 * 1024)

	var savedName string
	gomock.InOrder(
		files.EXPECT().Save(gomock.Any(), gomock.Any(), data).
			DoAndReturn(func(_ context.Context, name string, _ []byte) error {
				savedName = name
				return nil
			}),
		writer.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *models.UploadDB) error {
				assert.Equal(t, savedName, u.Filename)
				assert.Equal(t, userID, u.UserID)
				assert.Equal(t, "holiday.png", u.OriginalName)
				assert.Equal(t, now, u.UploadDate)
				return nil
			}),
		kw.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
				require.Len(t, msgs, 1)
				var ev models.UploadEvent
				require.NoError(t, json.Unmarshal(msgs[0].Value, &ev))
				assert.Equal(t, models.UploadCreated, ev.Type)
				assert.Equal(t, userID.String(), ev.UserID)
				return nil
			}),
	)

	upload, err := svc.Store(context.Background(), userID, data, "image/png", "holiday.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(upload.Filename, ".png"))
	assert.NotEqual(t, "holiday.png", upload.Filename)
	assert.Equal(t, int64(len(data)), upload.SizeBytes)
}

func TestUploadService_Store_MetadataFailureRemovesFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := NewMockFileStorage(ctrl)
	writer := NewMockUploadWriter(ctrl)

	var savedName string
	files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name string, _ []byte) error {
			savedName = name
			return nil
		})
	writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	files.EXPECT().Remove(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name string) error {
			assert.Equal(t, savedName, name)
			return nil
		})

	svc := NewUploadService(files, writer, NewMockUploadReader(ctrl), NewMockKafkaWriter(ctrl), 0)
	_, err := svc.Store(context.Background(), uuid.New(), pngBytes(100), "image/png", "a.png")
	assert.EqualError(t, err, "insert failed")
}

func TestUploadService_Store_DiskFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := NewMockFileStorage(ctrl)
	files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := NewUploadService(files, NewMockUploadWriter(ctrl), NewMockUploadReader(ctrl), nil, 0)
	_, err := svc.Store(context.Background(), uuid.New(), pngBytes(100), "image/png", "a.png")
	assert.EqualError(t, err, "disk full")
}

func TestUploadService_Store_KafkaFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := NewMockFileStorage(ctrl)
	writer := NewMockUploadWriter(ctrl)
	kw := NewMockKafkaWriter(ctrl)
	files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	kw.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	svc := NewUploadService(files, writer, NewMockUploadReader(ctrl), kw, 0)
	upload, err := svc.Store(context.Background(), uuid.New(), pngBytes(100), "image/png", "a.png")
	assert.NoError(t, err)
	assert.NotNil(t, upload)
}

func TestUploadService_ListForUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUploadReader(ctrl)
	svc := NewUploadService(NewMockFileStorage(ctrl), NewMockUploadWriter(ctrl), reader, nil, 0)
	userID := uuid.New()

	reader.EXPECT().ListByUserID(gomock.Any(), userID).Return(nil, nil)
	uploads, err := svc.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, uploads)
	assert.Empty(t, uploads)

	reader.EXPECT().ListByUserID(gomock.Any(), userID).Return([]models.UploadDB{{OriginalName: "a.png"}}, nil)
	uploads, err = svc.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, uploads, 1)

	reader.EXPECT().ListByUserID(gomock.Any(), userID).Return(nil, errors.New("db down"))
	_, err = svc.ListForUser(context.Background(), userID)
	assert.Error(t, err)
}

func TestGenerateFilename(t *testing.T) {
	a := generateFilename(pngBytes(64), "x.jpg")
	b := generateFilename(pngBytes(64), "x.jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".png"), "content wins over the client extension")

	c := generateFilename([]byte("not an image"), "photo.JPG")
	assert.True(t, strings.HasSuffix(c, ".jpg"))

	d := generateFilename([]byte("not an image"), "evil.p/h\\p")
	assert.NotContains(t, d, "/")
}

func TestCleanOriginalName(t *testing.T) {
	assert.Equal(t, "cat.png", cleanOriginalName("../../etc/cat.png"))
	assert.Equal(t, "cat.png", cleanOriginalName(`C:\Users\me\cat.png`))
	assert.Equal(t, "", cleanOriginalName(""))
	assert.Len(t, cleanOriginalName(strings.Repeat("a", 300)), maxOriginalNameLen)
}
