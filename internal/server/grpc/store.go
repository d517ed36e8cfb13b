package grpc

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"time"
)

//go:generate mockgen -destination=store_mock.go -package=grpc -source=store.go

const requestIDHeader = "x-request-id"

type backend interface {
	Insert(ctx context.Context, keyspace, rowKey, family, super string, cells []litetable.Cell) error
	Delete(ctx context.Context, keyspace, rowKey string, path litetable.ColumnPath, timestamp int64) error
	Slice(ctx context.Context, keyspace, rowKey, family string, superNames []string) ([]litetable.SuperSlice, error)
}

// store serves the SuperColumnStore service from a backend.
type store struct {
	backend backend
}

// requestID returns the caller's request id, or a new one.
func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDHeader); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}

func validateRow(keyspace, rowKey, family string) error {
	var errGrp []error
	if keyspace == "" {
		errGrp = append(errGrp, errors.New("keyspace required"))
	}
	if rowKey == "" {
		errGrp = append(errGrp, errors.New("rowKey required"))
	}
	if family == "" {
		errGrp = append(errGrp, errors.New("family required"))
	}
	if err := errors.Join(errGrp...); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// toStatus maps a backend error to a gRPC status.
func toStatus(err error, msg string) error {
	switch {
	case errors.Is(err, litetable.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s: %v", msg, err)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s: %v", msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s: %v", msg, err)
	default:
		return status.Errorf(codes.Internal, "%s: %v", msg, err)
	}
}

func (s *store) Insert(ctx context.Context, req *InsertRequest) (*Empty, error) {
	if err := validateRow(req.Keyspace, req.RowKey, req.Family); err != nil {
		return nil, err
	}
	if req.Super == "" {
		return nil, status.Error(codes.InvalidArgument, "super required")
	}
	if len(req.Cells) == 0 {
		return nil, status.Error(codes.InvalidArgument, "cells required")
	}

	now := time.Now()
	id := requestID(ctx)
	if err := s.backend.Insert(ctx, req.Keyspace, req.RowKey, req.Family, req.Super, req.Cells); err != nil {
		log.Error().Err(err).Str("request", id).Msg("insert failed")
		return nil, toStatus(err, "failed to write data")
	}

	log.Debug().Str("request", id).Msgf("Insert latency: %v", time.Since(now))
	return &Empty{}, nil
}

func (s *store) Delete(ctx context.Context, req *DeleteRequest) (*Empty, error) {
	if err := validateRow(req.Keyspace, req.RowKey, req.Path.Family); err != nil {
		return nil, err
	}
	if req.Path.Column != "" && req.Path.Super == "" {
		return nil, status.Error(codes.InvalidArgument, "column requires a super column")
	}

	now := time.Now()
	id := requestID(ctx)
	if err := s.backend.Delete(ctx, req.Keyspace, req.RowKey, req.Path, req.Timestamp); err != nil {
		log.Error().Err(err).Str("request", id).Msg("delete failed")
		return nil, toStatus(err, "failed to delete data")
	}

	log.Debug().Str("request", id).Msgf("Delete latency: %v", time.Since(now))
	return &Empty{}, nil
}

func (s *store) Slice(ctx context.Context, req *SliceRequest) (*SliceResponse, error) {
	if err := validateRow(req.Keyspace, req.RowKey, req.Family); err != nil {
		return nil, err
	}

	now := time.Now()
	id := requestID(ctx)
	supers, err := s.backend.Slice(ctx, req.Keyspace, req.RowKey, req.Family, req.SuperNames)
	if err != nil {
		log.Error().Err(err).Str("request", id).Msg("slice failed")
		return nil, toStatus(err, "failed to read data")
	}

	log.Debug().Str("request", id).Int("supers", len(supers)).
		Msgf("Slice latency: %v", time.Since(now))
	return &SliceResponse{Supers: supers}, nil
}
