package discovery

import (
	"fmt"
	"log"
	"strconv"

	"darkops-lab/internal/config"

	"github.com/hashicorp/consul/api"
)

type ServiceRegistry struct {
	client *api.Client
	config *config.Config
}

func NewServiceRegistry(cfg *config.Config) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = cfg.Consul.Address

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %v", err)
	}

	return &ServiceRegistry{
		client: client,
		config: cfg,
	}, nil
}

// Registration describes the HTTP service with a /health check.
func (sr *ServiceRegistry) Registration() (*api.AgentServiceRegistration, error) {
	server := sr.config.Server
	httpPort, err := strconv.Atoi(server.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %v", server.Port, err)
	}

	return &api.AgentServiceRegistration{
		ID:      server.ServiceID + "-http",
		Name:    server.ServiceName,
		Port:    httpPort,
		Address: server.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", server.ServiceAddress, server.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"darkops", "lab", "http"},
		Meta: map[string]string{
			"protocol": "http",
		},
	}, nil
}

func (sr *ServiceRegistry) Register() error {
	registration, err := sr.Registration()
	if err != nil {
		return err
	}
	if err := sr.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register HTTP service with Consul: %v", err)
	}

	log.Printf("Registered %s with Consul", registration.ID)
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	id := sr.config.Server.ServiceID + "-http"
	if err := sr.client.Agent().ServiceDeregister(id); err != nil {
		return fmt.Errorf("failed to deregister %s: %v", id, err)
	}
	return nil
}
