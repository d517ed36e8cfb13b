package grpc

import (
	"context"
	"errors"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// RemoteBackend is a backend served by another process.
type RemoteBackend struct {
	conn *grpc2.ClientConn
}

type RemoteConfig struct {
	// Target is a gRPC dial target, for example "localhost:9443".
	Target string
	// DialOptions are appended to the defaults (insecure transport, JSON codec).
	DialOptions []grpc2.DialOption
}

func (c *RemoteConfig) validate() error {
	var errGrp []error
	if c.Target == "" {
		errGrp = append(errGrp, errors.New("target required"))
	}
	return errors.Join(errGrp...)
}

// NewRemoteBackend creates a client for the SuperColumnStore service at cfg.Target.
func NewRemoteBackend(cfg *RemoteConfig) (*RemoteBackend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := append([]grpc2.DialOption{
		grpc2.WithTransportCredentials(insecure.NewCredentials()),
		grpc2.WithDefaultCallOptions(grpc2.ForceCodec(jsonCodec{})),
	}, cfg.DialOptions...)

	conn, err := grpc2.NewClient(cfg.Target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", cfg.Target, err)
	}
	return &RemoteBackend{conn: conn}, nil
}

// fromStatus turns a gRPC NotFound back into litetable.ErrNotFound.
func fromStatus(err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", litetable.ErrNotFound, status.Convert(err).Message())
	}
	return err
}

func (r *RemoteBackend) Insert(ctx context.Context, keyspace, rowKey, family, super string,
	cells []litetable.Cell) error {
	req := &InsertRequest{Keyspace: keyspace, RowKey: rowKey, Family: family, Super: super, Cells: cells}
	return fromStatus(r.conn.Invoke(ctx, "/"+serviceName+"/Insert", req, &Empty{}))
}

func (r *RemoteBackend) Delete(ctx context.Context, keyspace, rowKey string,
	path litetable.ColumnPath, timestamp int64) error {
	req := &DeleteRequest{Keyspace: keyspace, RowKey: rowKey, Path: path, Timestamp: timestamp}
	return fromStatus(r.conn.Invoke(ctx, "/"+serviceName+"/Delete", req, &Empty{}))
}

func (r *RemoteBackend) Slice(ctx context.Context, keyspace, rowKey, family string,
	superNames []string) ([]litetable.SuperSlice, error) {
	req := &SliceRequest{Keyspace: keyspace, RowKey: rowKey, Family: family, SuperNames: superNames}
	resp := &SliceResponse{}
	if err := r.conn.Invoke(ctx, "/"+serviceName+"/Slice", req, resp); err != nil {
		return nil, fromStatus(err)
	}
	return resp.Supers, nil
}

func (r *RemoteBackend) Start() error {
	r.conn.Connect()
	return nil
}

func (r *RemoteBackend) Stop() error {
	return r.conn.Close()
}

func (r *RemoteBackend) Name() string {
	return "Remote Backend"
}
