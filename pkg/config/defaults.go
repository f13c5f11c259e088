// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import "time"

const (
	defaultGRPCAddress       = ":56000"
	defaultRESTAddress       = ":56080"
	defaultPrometheusAddress = ":56090"
	defaultMaxRecvMsgSize    = 4 * 1024 * 1024
	defaultRPCTimeout        = time.Minute

	defaultStartupFile  = "./startup.xml"
	defaultWithDefaults = WithDefaultsExplicit

	defaultBackendType        = BackendTypeMemory
	defaultNetconfPort        = 830
	defaultTimeout            = 30 * time.Second
	defaultConnectRetry       = time.Second
	defaultConnectMaxAttempts = 5
	defaultRedisAddress       = "localhost:6379"
	defaultRedisKey           = "ofc:running"
)
