package grpc

import (
	"context"
	grpc2 "google.golang.org/grpc"
)

const serviceName = "litetable.v1.SuperColumnStore"

// storeServer is the server API for the SuperColumnStore service.
type storeServer interface {
	Insert(ctx context.Context, req *InsertRequest) (*Empty, error)
	Delete(ctx context.Context, req *DeleteRequest) (*Empty, error)
	Slice(ctx context.Context, req *SliceRequest) (*SliceResponse, error)
}

var serviceDesc = grpc2.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*storeServer)(nil),
	Methods: []grpc2.MethodDesc{
		{MethodName: "Insert", Handler: insertHandler},
		{MethodName: "Delete", Handler: deleteHandler},
		{MethodName: "Slice", Handler: sliceHandler},
	},
	Streams:  []grpc2.StreamDesc{},
	Metadata: "litetable/v1/super_column_store",
}

func insertHandler(srv any, ctx context.Context, dec func(any) error,
	interceptor grpc2.UnaryServerInterceptor) (any, error) {
	in := new(InsertRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(storeServer).Insert(ctx, in)
	}
	info := &grpc2.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Insert"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(storeServer).Insert(ctx, req.(*InsertRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteHandler(srv any, ctx context.Context, dec func(any) error,
	interceptor grpc2.UnaryServerInterceptor) (any, error) {
	in := new(DeleteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(storeServer).Delete(ctx, in)
	}
	info := &grpc2.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Delete"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(storeServer).Delete(ctx, req.(*DeleteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func sliceHandler(srv any, ctx context.Context, dec func(any) error,
	interceptor grpc2.UnaryServerInterceptor) (any, error) {
	in := new(SliceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(storeServer).Slice(ctx, in)
	}
	info := &grpc2.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Slice"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(storeServer).Slice(ctx, req.(*SliceRequest))
	}
	return interceptor(ctx, in, info, handler)
}
