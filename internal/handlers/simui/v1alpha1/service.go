package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "simui.v1alpha1.BuildService"

// Method names
const (
	MethodCreateBuild  = "CreateBuild"
	MethodGetBuild     = "GetBuild"
	MethodDeleteBuild  = "DeleteBuild"
	MethodUpdateField  = "UpdateField"
	MethodApplyPreset  = "ApplyPreset"
	MethodSetEPWeights = "SetEPWeights"
	MethodExport       = "Export"
	MethodImportLink   = "ImportLink"
	MethodDescribeGear = "DescribeGear"
)

// BuildServiceServer is the server API of the build service. Requests and
// responses are google.protobuf.Struct messages.
type BuildServiceServer interface {
	CreateBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateField(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ApplyPreset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SetEPWeights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Export(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ImportLink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DescribeGear(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv BuildServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BuildServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BuildServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// BuildServiceDesc describes the build service for grpc.Server.RegisterService
var BuildServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BuildServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCreateBuild, BuildServiceServer.CreateBuild),
		unary(MethodGetBuild, BuildServiceServer.GetBuild),
		unary(MethodDeleteBuild, BuildServiceServer.DeleteBuild),
		unary(MethodUpdateField, BuildServiceServer.UpdateField),
		unary(MethodApplyPreset, BuildServiceServer.ApplyPreset),
		unary(MethodSetEPWeights, BuildServiceServer.SetEPWeights),
		unary(MethodExport, BuildServiceServer.Export),
		unary(MethodImportLink, BuildServiceServer.ImportLink),
		unary(MethodDescribeGear, BuildServiceServer.DescribeGear),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "simui/v1alpha1/build_service",
}

// RegisterBuildServiceServer registers srv on s
func RegisterBuildServiceServer(s grpc.ServiceRegistrar, srv BuildServiceServer) {
	s.RegisterService(&BuildServiceDesc, srv)
}

// FullMethod returns the full gRPC method path, e.g.
// "/simui.v1alpha1.BuildService/GetBuild"
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// BuildServiceClient calls the build service
type BuildServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBuildServiceClient creates a client on cc
func NewBuildServiceClient(cc grpc.ClientConnInterface) *BuildServiceClient {
	return &BuildServiceClient{cc: cc}
}

// Call invokes one unary method
func (c *BuildServiceClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
