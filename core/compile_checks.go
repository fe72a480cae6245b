package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Environment     = OSEnvironment{}
	_ Environment     = MapEnvironment(nil)
	_ Credential      = unresolvedCredential{}
	_ MetricsRecorder = NopMetricsRecorder{}
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
