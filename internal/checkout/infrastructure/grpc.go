package infrastructure

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"go-checkout/pkg/errors"
)

// CheckoutFullMethod is the full gRPC method name of Checkout
const CheckoutFullMethod = "/checkout.v1.CheckoutService/Checkout"

// CheckoutServer is the server API for checkout.v1.CheckoutService.
// Requests and responses are google.protobuf.Struct values carrying the
// JSON shape of CheckoutRequest and CheckoutResponse.
type CheckoutServer interface {
	Checkout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var checkoutServiceDesc = grpc.ServiceDesc{
	ServiceName: "checkout.v1.CheckoutService",
	HandlerType: (*CheckoutServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Checkout",
			Handler:    checkoutHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "checkout/v1/checkout.proto",
}

// RegisterCheckoutServer registers srv on s
func RegisterCheckoutServer(s grpc.ServiceRegistrar, srv CheckoutServer) {
	s.RegisterService(&checkoutServiceDesc, srv)
}

func checkoutHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CheckoutServer).Checkout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CheckoutFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CheckoutServer).Checkout(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// GRPCServer implements CheckoutServer
type GRPCServer struct {
	processor *Processor
}

// NewGRPCServer creates a new gRPC server
func NewGRPCServer(processor *Processor) *GRPCServer {
	return &GRPCServer{processor: processor}
}

// Checkout implements CheckoutServer.Checkout
func (s *GRPCServer) Checkout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CheckoutRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, errors.NewValidation("invalid checkout request", err.Error())
	}

	out, err := s.processor.Process(ctx, in)
	if err != nil {
		return nil, err
	}

	resp, err := toStruct(out)
	if err != nil {
		return nil, errors.NewInternal("failed to encode checkout response", err)
	}
	return resp, nil
}

// toStruct converts v to a Struct through its JSON form
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// fromStruct decodes s into v through its JSON form
func fromStruct(s *structpb.Struct, v interface{}) error {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
