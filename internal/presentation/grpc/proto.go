package grpc

// proto.go defines the gRPC server interface derived from
// centavo/installments/v1/installments.proto. This file serves as a stand-in
// for buf-generated code. Once `buf generate` is run, replace this file with
// the import from github.com/centavo/installments/api/gen/go/centavo/installments/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InstallmentServiceServer is the server API for InstallmentService.
// It mirrors the proto-generated interface from centavo.installments.v1.InstallmentService.
type InstallmentServiceServer interface {
	CreatePlan(context.Context, *CreatePlanRequest) (*CreatePlanResponse, error)
	GetPlan(context.Context, *GetPlanRequest) (*GetPlanResponse, error)
	ListPlans(context.Context, *ListPlansRequest) (*ListPlansResponse, error)
	EditPlan(context.Context, *EditPlanRequest) (*EditPlanResponse, error)
	CancelPlan(context.Context, *CancelPlanRequest) (*CancelPlanResponse, error)
	RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentResponse, error)
	mustEmbedUnimplementedInstallmentServiceServer()
}

// UnimplementedInstallmentServiceServer provides forward-compatible default implementations.
type UnimplementedInstallmentServiceServer struct{}

func (UnimplementedInstallmentServiceServer) CreatePlan(context.Context, *CreatePlanRequest) (*CreatePlanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreatePlan not implemented")
}
func (UnimplementedInstallmentServiceServer) GetPlan(context.Context, *GetPlanRequest) (*GetPlanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPlan not implemented")
}
func (UnimplementedInstallmentServiceServer) ListPlans(context.Context, *ListPlansRequest) (*ListPlansResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPlans not implemented")
}
func (UnimplementedInstallmentServiceServer) EditPlan(context.Context, *EditPlanRequest) (*EditPlanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EditPlan not implemented")
}
func (UnimplementedInstallmentServiceServer) CancelPlan(context.Context, *CancelPlanRequest) (*CancelPlanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelPlan not implemented")
}
func (UnimplementedInstallmentServiceServer) RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordPayment not implemented")
}
func (UnimplementedInstallmentServiceServer) mustEmbedUnimplementedInstallmentServiceServer() {}

// RegisterInstallmentServiceServer registers the InstallmentServiceServer with the gRPC server.
func RegisterInstallmentServiceServer(s *grpclib.Server, srv InstallmentServiceServer) {
	s.RegisterService(&_InstallmentService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _InstallmentService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "centavo.installments.v1.InstallmentService",
	HandlerType: (*InstallmentServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreatePlan", Handler: _InstallmentService_CreatePlan_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "GetPlan", Handler: _InstallmentService_GetPlan_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "ListPlans", Handler: _InstallmentService_ListPlans_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "EditPlan", Handler: _InstallmentService_EditPlan_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "CancelPlan", Handler: _InstallmentService_CancelPlan_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "RecordPayment", Handler: _InstallmentService_RecordPayment_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _InstallmentService_CreatePlan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreatePlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InstallmentServiceServer).CreatePlan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/centavo.installments.v1.InstallmentService/CreatePlan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InstallmentServiceServer).CreatePlan(ctx, req.(*CreatePlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InstallmentService_GetPlan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InstallmentServiceServer).GetPlan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/centavo.installments.v1.InstallmentService/GetPlan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InstallmentServiceServer).GetPlan(ctx, req.(*GetPlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InstallmentService_ListPlans_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListPlansRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InstallmentServiceServer).ListPlans(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/centavo.installments.v1.InstallmentService/ListPlans",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InstallmentServiceServer).ListPlans(ctx, req.(*ListPlansRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InstallmentService_EditPlan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(EditPlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InstallmentServiceServer).EditPlan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/centavo.installments.v1.InstallmentService/EditPlan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InstallmentServiceServer).EditPlan(ctx, req.(*EditPlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InstallmentService_CancelPlan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CancelPlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InstallmentServiceServer).CancelPlan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/centavo.installments.v1.InstallmentService/CancelPlan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InstallmentServiceServer).CancelPlan(ctx, req.(*CancelPlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InstallmentService_RecordPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InstallmentServiceServer).RecordPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/centavo.installments.v1.InstallmentService/RecordPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InstallmentServiceServer).RecordPayment(ctx, req.(*RecordPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}
