package grpc

import (
	"context"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/internal/location"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	repository directory.Repository
}

func NewServer(repo directory.Repository) *Server {
	return &Server{repository: repo}
}

// NewGRPCServer builds a grpc.Server with the directory service registered.
func NewGRPCServer(repo directory.Repository, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor))
	s := grpc.NewServer(opts...)
	RegisterDirectoryServer(s, NewServer(repo))
	return s
}

func (s *Server) Filter(ctx context.Context, req *FilterRequest) (*FilterResponse, error) {
	filters, err := directory.ParseFilters(req.Category, req.MaxRating)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	all, err := s.repository.List(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to list businesses: %v", err)
	}

	metrics.IncrementFilterEvaluations()
	list := directory.Filter(all, filters.Category, filters.MaxRating)
	return &FilterResponse{
		Businesses: list,
		Count:      len(list),
		Filters:    filters,
	}, nil
}

func (s *Server) Options(ctx context.Context, req *OptionsRequest) (*OptionsResponse, error) {
	all, err := s.repository.List(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to list businesses: %v", err)
	}
	opts := directory.Summarize(all)
	return &opts, nil
}

func (s *Server) Locate(ctx context.Context, req *LocateRequest) (*LocateResponse, error) {
	report := location.Report{Lat: req.Lat, Lng: req.Lng, Error: req.Error}
	resp := location.Resolve(ctx, report).Response()
	return &resp, nil
}

func LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	metrics.RecordEventProcessed()

	resp, err := handler(ctx, req)

	metrics.RecordLatency(time.Since(start).Microseconds())
	if err != nil {
		metrics.RecordEventFailed()
		logger.Warn("grpc_call_failed", "method", info.FullMethod, "code", status.Code(err).String(), "error", err.Error())
		return resp, err
	}
	logger.Debug("grpc_call", "method", info.FullMethod, "duration_us", time.Since(start).Microseconds())
	return resp, nil
}
