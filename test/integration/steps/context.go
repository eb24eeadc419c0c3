// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/config"
	"github.com/finance-tracker/tracker/internal/infra/broker"
	"github.com/finance-tracker/tracker/internal/infra/dependency"
	"github.com/finance-tracker/tracker/internal/integration/persistence/model"
	"github.com/finance-tracker/tracker/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	isoDate       = "2006-01-02"
)

type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	streamClient *http.Client
	response     *response
	lastRequest  *request
	db           *mock.Db
	accessToken  string
	currentGoal  uuid.UUID
	lastRecordID uuid.UUID
}

type request struct {
	method  string
	path    string
	payload []byte
}

type response struct {
	status  int
	headers http.Header
	body    any
}

var (
	serverInit     sync.Once
	testServerPort int
	testInjector   *dependency.Injector
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		testServerPort = findAvailablePort()
	})

	ctx.AfterSuite(func() {
		if testInjector == nil {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = testInjector.Sessions.Shutdown(shutdownCtx)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:       &http.Client{Timeout: 10 * time.Second},
		streamClient: &http.Client{Timeout: 5 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":          &model.UserModel{},
			"revoked_tokens": &model.RevokedTokenModel{},
			"transactions":   &model.TransactionModel{},
			"goals":          &model.GoalModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^I am registered as "([^"]*)" with password "([^"]*)"$`, test.iAmRegisteredAs)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAs)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I read the first "([^"]*)" event from "([^"]*)"$`, test.iReadTheFirstEventFrom)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should eventually be "([^"]*)"$`, test.theResponseFieldShouldEventuallyBe)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, test.theResponseHeaderShouldBe)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Port = testServerPort
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Redis.ChannelPrefix = "finance-tracker-test"
	cfg.Session.Timezone = "UTC"
	cfg.Session.InitialSnapshotWait = 2 * time.Second
	cfg.Session.StreamKeepAlive = time.Second
	cfg.RateLimit.Enabled = false
	return cfg
}

func (t *testContext) before() error {
	t.uri = fmt.Sprintf("http://localhost:%d", testServerPort)
	t.headers = make(map[string]string)
	t.response = nil
	t.lastRequest = nil
	t.accessToken = ""
	t.currentGoal = uuid.Nil
	t.lastRecordID = uuid.Nil

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() error {
	serverInit.Do(func() {
		cfg := testConfig()
		rdb := mock.NewRedis()

		testInjector = dependency.NewInjector(
			cfg,
			t.db.DbConn,
			rdb,
			t.db.Database().HealthCheck,
			broker.HealthCheck(rdb),
		)

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: testInjector.Router.Setup(cfg.Server.Environment),
		}

		go func() {
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server on %s did not become healthy", t.uri)
}

// replacePlaceholders expands the values a scenario can refer to.
// Dates are resolved in UTC, which is the session timezone under test.
func (t *testContext) replacePlaceholders(content string) string {
	today := time.Now().UTC()
	lastMonth := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC)

	replacer := strings.NewReplacer(
		"{{access_token}}", t.accessToken,
		"{{goal_id}}", t.currentGoal.String(),
		"{{record_id}}", t.lastRecordID.String(),
		"{{today}}", today.Format(isoDate),
		"{{last_month}}", lastMonth.Format(isoDate),
		"{{current_month}}", today.Format("2006-01"),
	)
	return replacer.Replace(content)
}
