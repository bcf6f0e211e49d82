package mock

import "net/http/httptest"

type HTTPTestPortalServer struct {
	*PortalService
	Server *httptest.Server
	URL    string
}

func NewHTTPTestPortalServer(opts ...Option) (*HTTPTestPortalServer, error) {
	service, err := NewPortalService(opts...)
	if err != nil {
		return nil, err
	}
	server := &HTTPTestPortalServer{
		PortalService: service,
	}
	server.Server = httptest.NewServer(service.Handler())
	service.Issuer = server.Server.URL
	server.URL = server.Server.URL
	return server, nil
}

func (s *HTTPTestPortalServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}
