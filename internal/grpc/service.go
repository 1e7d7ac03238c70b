package grpc

import (
	"context"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"google.golang.org/grpc"
)

const (
	ServiceName = "directory.v1.Directory"

	FilterMethod  = "/" + ServiceName + "/Filter"
	OptionsMethod = "/" + ServiceName + "/Options"
	LocateMethod  = "/" + ServiceName + "/Locate"
)

type FilterRequest struct {
	Category  string   `json:"category,omitempty"`
	MaxRating *float64 `json:"max_rating,omitempty"`
}

type FilterResponse = models.BusinessListResponse

type OptionsRequest struct{}

type OptionsResponse = directory.Options

type LocateRequest struct {
	Lat   *float64 `json:"lat,omitempty"`
	Lng   *float64 `json:"lng,omitempty"`
	Error string   `json:"error,omitempty"`
}

type LocateResponse = models.LocationResponse

// DirectoryServer is the server API for the directory.v1.Directory service.
type DirectoryServer interface {
	Filter(context.Context, *FilterRequest) (*FilterResponse, error)
	Options(context.Context, *OptionsRequest) (*OptionsResponse, error)
	Locate(context.Context, *LocateRequest) (*LocateResponse, error)
}

func RegisterDirectoryServer(s grpc.ServiceRegistrar, srv DirectoryServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func filterHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FilterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectoryServer).Filter(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FilterMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DirectoryServer).Filter(ctx, req.(*FilterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func optionsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(OptionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectoryServer).Options(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OptionsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DirectoryServer).Options(ctx, req.(*OptionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func locateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LocateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectoryServer).Locate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LocateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DirectoryServer).Locate(ctx, req.(*LocateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Filter", Handler: filterHandler},
		{MethodName: "Options", Handler: optionsHandler},
		{MethodName: "Locate", Handler: locateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "directory/v1/directory.proto",
}

// Client calls the directory service using the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *Client) Filter(ctx context.Context, in *FilterRequest, opts ...grpc.CallOption) (*FilterResponse, error) {
	out := new(FilterResponse)
	if err := c.invoke(ctx, FilterMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Options(ctx context.Context, in *OptionsRequest, opts ...grpc.CallOption) (*OptionsResponse, error) {
	out := new(OptionsResponse)
	if err := c.invoke(ctx, OptionsMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Locate(ctx context.Context, in *LocateRequest, opts ...grpc.CallOption) (*LocateResponse, error) {
	out := new(LocateResponse)
	if err := c.invoke(ctx, LocateMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
