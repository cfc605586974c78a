package envvar

const (
	// SampleEnv is the environment variable used to determine the environment
	SampleEnv = "SAMPLE_ENV"

	// SampleConfig is the environment variable used to override the config file path
	SampleConfig = "SAMPLE_CONFIG"

	// SampleServerGRPCPort is the environment variable used to determine the gRPC port
	SampleServerGRPCPort = "SAMPLE_SERVER_GRPC_PORT"
)
