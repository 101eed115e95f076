package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnknownDataset is returned when the requested dataset has no exporter.
var ErrUnknownDataset = errors.New("unknown export dataset")

// ExportService snapshots survey data to CSV, uploads the file to object
// storage, and hands back a short-lived download link.
type ExportService interface {
	Export(ctx context.Context, dataset string) (*model.ExportSnapshot, error)
}

type exportService struct {
	assessmentRepo repository.AssessmentRepository
	courseRepo     repository.CourseRepository
	s3Client       *s3.Client
	presignClient  *s3.PresignClient
	bucketName     string
	urlTTL         time.Duration
	logger         zerolog.Logger
}

// NewExportService creates a new export service.
func NewExportService(
	assessmentRepo repository.AssessmentRepository,
	courseRepo repository.CourseRepository,
	s3Client *s3.Client,
	bucketName string,
	urlTTL time.Duration,
	logger zerolog.Logger,
) ExportService {
	return &exportService{
		assessmentRepo: assessmentRepo,
		courseRepo:     courseRepo,
		s3Client:       s3Client,
		presignClient:  s3.NewPresignClient(s3Client),
		bucketName:     bucketName,
		urlTTL:         urlTTL,
		logger:         logger.With().Str("service", "ExportService").Logger(),
	}
}

func (s *exportService) Export(ctx context.Context, dataset string) (*model.ExportSnapshot, error) {
	var (
		records [][]string
		err     error
	)
	switch dataset {
	case "assessments":
		var rows []model.AssessmentRecord
		if rows, err = s.assessmentRepo.ListAll(ctx); err == nil {
			records = assessmentCSVRecords(rows)
		}
	case "courses":
		var courses []model.Course
		if courses, err = s.courseRepo.ListAll(ctx); err == nil {
			records = courseCSVRecords(courses)
		}
	default:
		return nil, ErrUnknownDataset
	}
	if err != nil {
		s.logger.Error().Err(err).Str("dataset", dataset).Msg("Failed to collect export records")
		return nil, fmt.Errorf("failed to collect %s records: %w", dataset, err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to encode %s csv: %w", dataset, err)
	}

	objectKey := fmt.Sprintf("exports/%s-%s.csv", dataset, uuid.New().String())
	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("object_key", objectKey).Msg("Failed to upload export snapshot")
		return nil, fmt.Errorf("failed to upload export snapshot: %w", err)
	}

	resp, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.urlTTL))
	if err != nil {
		s.logger.Error().Err(err).Str("object_key", objectKey).Msg("Failed to generate presigned URL")
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &model.ExportSnapshot{
		Dataset:     dataset,
		ObjectKey:   objectKey,
		DownloadURL: resp.URL,
		RowCount:    len(records) - 1, // header excluded
		ExpiresAt:   time.Now().Add(s.urlTTL),
	}, nil
}

func assessmentCSVRecords(rows []model.AssessmentRecord) [][]string {
	records := [][]string{{
		"instructor_code", "course_code", "assessment_type",
		"percent_of_class_assessment", "ai_misuse_susceptibility", "modification_level",
	}}
	for _, row := range rows {
		records = append(records, []string{
			row.InstructorCode,
			row.CourseCode,
			row.AssessmentType,
			formatCSVFloat(row.PercentOfClassAssessment),
			formatCSVFloat(row.AIMisuseSusceptibility),
			formatCSVFloat(row.ModificationLevel),
		})
	}
	return records
}

func courseCSVRecords(courses []model.Course) [][]string {
	records := [][]string{{
		"id", "instructor_code", "course_code", "course_title", "term",
		"level", "modality", "approx_students", "created_at",
	}}
	for _, course := range courses {
		records = append(records, []string{
			course.ID,
			course.InstructorCode,
			course.CourseCode,
			course.CourseTitle,
			course.Term,
			course.Level,
			course.Modality,
			strconv.Itoa(course.ApproxStudents),
			course.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return records
}

func formatCSVFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
