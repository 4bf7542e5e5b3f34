package shared

// ProjectID is used when GOOGLE_CLOUD_PROJECT is unset.
const ProjectID = "fitfuel-dev"

// Pub/Sub topics
const (
	TopicPlanRequest   = "topic-plan-request"
	TopicPlanGenerated = "topic-plan-generated"
)

// CloudEvent types and sources
const (
	EventTypePlanGenerated = "com.fitfuel.plan.generated"
	EventSourcePlanner     = "/functions/planner"
)

// Firestore collections
const (
	CollectionPlans      = "workout_plans"
	CollectionExecutions = "executions"
	CollectionExercises  = "exercises"
)

// SecretCatalogAPIToken names the Secret Manager secret holding the bearer
// token for the exercise catalog API.
const SecretCatalogAPIToken = "CATALOG_API_TOKEN"
