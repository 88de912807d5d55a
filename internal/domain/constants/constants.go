// Package constants holds names shared between configuration and the layers that read it.
package constants

// Environments.
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers. An empty provider disables publishing.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Document store providers.
const (
	DocStoreProviderFirestore = "firestore"
	DocStoreProviderMongo     = "mongo"
	DocStoreProviderMemory    = "memory"
)

// Topics and subscriptions.
const (
	TopicOrderPlaced = "order-placed"
)
