// Package v1 defines the feedback.v1.Results gRPC service. Requests and
// responses are google.protobuf.Struct messages.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "feedback.v1.Results"

const (
	Results_GetResults_FullMethodName      = "/feedback.v1.Results/GetResults"
	Results_GetPersonResult_FullMethodName = "/feedback.v1.Results/GetPersonResult"
	Results_GetRanking_FullMethodName      = "/feedback.v1.Results/GetRanking"
	Results_GetCompetencies_FullMethodName = "/feedback.v1.Results/GetCompetencies"
)

// ResultsClient is the client API for the Results service.
type ResultsClient interface {
	GetResults(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetPersonResult(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRanking(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCompetencies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type resultsClient struct {
	cc grpc.ClientConnInterface
}

func NewResultsClient(cc grpc.ClientConnInterface) ResultsClient {
	return &resultsClient{cc}
}

func (c *resultsClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *resultsClient) GetResults(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Results_GetResults_FullMethodName, in, opts...)
}

func (c *resultsClient) GetPersonResult(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Results_GetPersonResult_FullMethodName, in, opts...)
}

func (c *resultsClient) GetRanking(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Results_GetRanking_FullMethodName, in, opts...)
}

func (c *resultsClient) GetCompetencies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Results_GetCompetencies_FullMethodName, in, opts...)
}

// ResultsServer is the server API for the Results service. Implementations
// must embed UnimplementedResultsServer.
type ResultsServer interface {
	GetResults(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPersonResult(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRanking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCompetencies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedResultsServer()
}

type UnimplementedResultsServer struct{}

func (UnimplementedResultsServer) GetResults(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetResults not implemented")
}

func (UnimplementedResultsServer) GetPersonResult(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPersonResult not implemented")
}

func (UnimplementedResultsServer) GetRanking(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRanking not implemented")
}

func (UnimplementedResultsServer) GetCompetencies(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCompetencies not implemented")
}

func (UnimplementedResultsServer) mustEmbedUnimplementedResultsServer() {}

func RegisterResultsServer(s grpc.ServiceRegistrar, srv ResultsServer) {
	s.RegisterService(&Results_ServiceDesc, srv)
}

type structMethod func(ResultsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ResultsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ResultsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Results_ServiceDesc is the grpc.ServiceDesc for the Results service.
var Results_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ResultsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetResults",
			Handler:    unaryHandler(Results_GetResults_FullMethodName, ResultsServer.GetResults),
		},
		{
			MethodName: "GetPersonResult",
			Handler:    unaryHandler(Results_GetPersonResult_FullMethodName, ResultsServer.GetPersonResult),
		},
		{
			MethodName: "GetRanking",
			Handler:    unaryHandler(Results_GetRanking_FullMethodName, ResultsServer.GetRanking),
		},
		{
			MethodName: "GetCompetencies",
			Handler:    unaryHandler(Results_GetCompetencies_FullMethodName, ResultsServer.GetCompetencies),
		},
	},
	Streams: []grpc.StreamDesc{},
}
