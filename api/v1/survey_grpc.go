// Package v1 declares the survey.v1.SurveyStats gRPC service. Payloads are
// protobuf well-known types: requests and structured results travel as
// google.protobuf.Struct, the text answer as google.protobuf.StringValue.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "survey.v1.SurveyStats"

const (
	SurveyStats_ListDatasets_FullMethodName            = "/survey.v1.SurveyStats/ListDatasets"
	SurveyStats_GetReport_FullMethodName               = "/survey.v1.SurveyStats/GetReport"
	SurveyStats_GetDistribution_FullMethodName         = "/survey.v1.SurveyStats/GetDistribution"
	SurveyStats_GetTopQuestion_FullMethodName          = "/survey.v1.SurveyStats/GetTopQuestion"
	SurveyStats_GetQuestionsContaining_FullMethodName  = "/survey.v1.SurveyStats/GetQuestionsContaining"
	SurveyStats_GetMeanScores_FullMethodName           = "/survey.v1.SurveyStats/GetMeanScores"
	SurveyStats_GetCategoryDistribution_FullMethodName = "/survey.v1.SurveyStats/GetCategoryDistribution"
	SurveyStats_GetReliability_FullMethodName          = "/survey.v1.SurveyStats/GetReliability"
	SurveyStats_Answer_FullMethodName                  = "/survey.v1.SurveyStats/Answer"
)

// SurveyStatsServer is the server API for the SurveyStats service.
type SurveyStatsServer interface {
	ListDatasets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDistribution(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTopQuestion(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetQuestionsContaining(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMeanScores(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCategoryDistribution(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetReliability(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Answer(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
}

// UnimplementedSurveyStatsServer can be embedded for forward compatibility.
type UnimplementedSurveyStatsServer struct{}

func (UnimplementedSurveyStatsServer) ListDatasets(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDatasets not implemented")
}
func (UnimplementedSurveyStatsServer) GetReport(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetReport not implemented")
}
func (UnimplementedSurveyStatsServer) GetDistribution(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDistribution not implemented")
}
func (UnimplementedSurveyStatsServer) GetTopQuestion(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTopQuestion not implemented")
}
func (UnimplementedSurveyStatsServer) GetQuestionsContaining(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetQuestionsContaining not implemented")
}
func (UnimplementedSurveyStatsServer) GetMeanScores(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMeanScores not implemented")
}
func (UnimplementedSurveyStatsServer) GetCategoryDistribution(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCategoryDistribution not implemented")
}
func (UnimplementedSurveyStatsServer) GetReliability(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetReliability not implemented")
}
func (UnimplementedSurveyStatsServer) Answer(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Answer not implemented")
}

// RegisterSurveyStatsServer registers srv on s.
func RegisterSurveyStatsServer(s grpc.ServiceRegistrar, srv SurveyStatsServer) {
	s.RegisterService(&SurveyStats_ServiceDesc, srv)
}

type structMethod func(SurveyStatsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// structHandler adapts a Struct->Struct method to a grpc.MethodDesc handler.
func structHandler(fullMethod string, call structMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SurveyStatsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SurveyStatsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func answerHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SurveyStatsServer).Answer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SurveyStats_Answer_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SurveyStatsServer).Answer(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SurveyStats_ServiceDesc is the grpc.ServiceDesc for the SurveyStats service.
var SurveyStats_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SurveyStatsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListDatasets",
			Handler:    structHandler(SurveyStats_ListDatasets_FullMethodName, SurveyStatsServer.ListDatasets),
		},
		{
			MethodName: "GetReport",
			Handler:    structHandler(SurveyStats_GetReport_FullMethodName, SurveyStatsServer.GetReport),
		},
		{
			MethodName: "GetDistribution",
			Handler:    structHandler(SurveyStats_GetDistribution_FullMethodName, SurveyStatsServer.GetDistribution),
		},
		{
			MethodName: "GetTopQuestion",
			Handler:    structHandler(SurveyStats_GetTopQuestion_FullMethodName, SurveyStatsServer.GetTopQuestion),
		},
		{
			MethodName: "GetQuestionsContaining",
			Handler:    structHandler(SurveyStats_GetQuestionsContaining_FullMethodName, SurveyStatsServer.GetQuestionsContaining),
		},
		{
			MethodName: "GetMeanScores",
			Handler:    structHandler(SurveyStats_GetMeanScores_FullMethodName, SurveyStatsServer.GetMeanScores),
		},
		{
			MethodName: "GetCategoryDistribution",
			Handler:    structHandler(SurveyStats_GetCategoryDistribution_FullMethodName, SurveyStatsServer.GetCategoryDistribution),
		},
		{
			MethodName: "GetReliability",
			Handler:    structHandler(SurveyStats_GetReliability_FullMethodName, SurveyStatsServer.GetReliability),
		},
		{
			MethodName: "Answer",
			Handler:    answerHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "survey/v1/survey.proto",
}

// SurveyStatsClient is the client API for the SurveyStats service.
type SurveyStatsClient interface {
	ListDatasets(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDistribution(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetTopQuestion(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetQuestionsContaining(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetMeanScores(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCategoryDistribution(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetReliability(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Answer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type surveyStatsClient struct {
	cc grpc.ClientConnInterface
}

func NewSurveyStatsClient(cc grpc.ClientConnInterface) SurveyStatsClient {
	return &surveyStatsClient{cc}
}

func (c *surveyStatsClient) invokeStruct(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *surveyStatsClient) ListDatasets(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, SurveyStats_ListDatasets_FullMethodName, in, opts...)
}

func (c *surveyStatsClient) GetReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, SurveyStats_GetReport_FullMethodName, in, opts...)
}

func (c *surveyStatsClient) GetDistribution(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, SurveyStats_GetDistribution_FullMethodName, in, opts...)
}

func (c *surveyStatsClient) GetTopQuestion(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, SurveyStats_GetTopQuestion_FullMethodName, in, opts...)
}

func (c *surveyStatsClient) GetQuestionsContaining(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, SurveyStats_GetQuestionsContaining_FullMethodName, in, opts...)
}

func (c *surveyStatsClient) GetMeanScores(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, SurveyStats_GetMeanScores_FullMethodName, in, opts...)
}

func (c *surveyStatsClient) GetCategoryDistribution(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, SurveyStats_GetCategoryDistribution_FullMethodName, in, opts...)
}

func (c *surveyStatsClient) GetReliability(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, SurveyStats_GetReliability_FullMethodName, in, opts...)
}

func (c *surveyStatsClient) Answer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, SurveyStats_Answer_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
