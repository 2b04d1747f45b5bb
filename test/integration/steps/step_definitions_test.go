//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/finance-tracker/assistant/config"
	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/infra/dependency"
	"github.com/finance-tracker/assistant/internal/integration/adapters"
	"github.com/finance-tracker/assistant/internal/integration/persistence/model"
	"github.com/finance-tracker/assistant/test/integration/mock"
)

const (
	testJWTSecret     = "test-jwt-secret-key-for-testing-purposes"
	testAdminUsername = "admin"
	testAdminPassword = "admin-secret"
	parserPath        = "/parse"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name:                "finance-assistant-api",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	accessToken string
	vars        map[string]string
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	testServerPort int
	portInit       sync.Once

	testDB     *mock.Db
	testClock  *mock.Clock
	testParser *mock.ParserServer
	testTokens adapter.TokenService
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

func initializeEnvironment() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("TIMEZONE", "UTC")
		_ = os.Setenv("JWT_SECRET", testJWTSecret)
		_ = os.Setenv("ADMIN_USERNAME", testAdminUsername)
		_ = os.Setenv("ADMIN_PASSWORD_HASH", hashPassword(testAdminPassword))

		testDB = mock.NewDb(map[string]any{
			"profiles":           &model.ProfileModel{},
			"transactions":       &model.TransactionModel{},
			"goals":              &model.GoalModel{},
			"scheduled_payments": &model.ScheduledPaymentModel{},
		}, []string{"profiles", "transactions", "goals", "scheduled_payments"})
		testClock = mock.NewClock(time.UTC)
		testParser = mock.NewParserServer()
		testTokens = adapters.NewTokenService(testJWTSecret, time.Hour, time.Hour)
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializeEnvironment()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db:     testDB,
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Profile and auth steps
	ctx.Given(`^I am registered with:$`, test.iAmRegisteredWith)
	ctx.Given(`^a profile "([^"]*)" is registered with:$`, test.aProfileIsRegisteredWith)
	ctx.Given(`^I am logged in as admin$`, test.iAmLoggedInAsAdmin)
	ctx.Given(`^I am not logged in$`, test.iAmNotLoggedIn)

	// Assistant steps
	ctx.Given(`^I have an assistant session$`, test.iHaveAnAssistantSession)
	ctx.Given(`^the intent parser responds with:$`, test.theIntentParserRespondsWith)
	ctx.Given(`^the intent parser responds with status (\d+)$`, test.theIntentParserRespondsWithStatus)
	ctx.Then(`^the intent parser should have received (\d+) requests?$`, test.theIntentParserShouldHaveReceived)
	ctx.Then(`^the intent parser request field "([^"]*)" should be "([^"]*)"$`, test.theIntentParserRequestFieldShouldBe)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I store the response field "([^"]*)" as "([^"]*)"$`, test.iStoreTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

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

func hashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.vars = make(map[string]string)

	testClock.Reset()
	testParser.Reset()
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			startErr = err
			return
		}

		injector, err := dependency.NewInjector(cfg, testDB.DbConn, dependency.Options{
			Redis:  mock.NewRedis(),
			Clock:  testClock,
			Parser: adapters.NewHTTPParser(testParser.URL()+parserPath, nil),
			DBHealthChecker: func() bool {
				return testDB != nil && testDB.DbConn != nil
			},
			SessionHealthChecker: func() bool { return true },
		})
		if err != nil {
			startErr = err
			return
		}

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: injector.Router.Setup(cfg.Server.Environment),
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}

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
	return errors.New("server did not become healthy")
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theCurrentTimeIs(value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	testClock.SetCurrentTime(current)
	return nil
}

func (t *testContext) register(body *godog.DocString) (string, string, error) {
	token := t.accessToken
	t.accessToken = ""
	defer func() { t.accessToken = token }()

	if err := t.iSendARequestToWithBody(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return "", "", err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return "", "", err
	}

	userID, _ := getFieldValue(t.response.body, "profile.user_id").(string)
	accessToken, _ := getFieldValue(t.response.body, "access_token").(string)
	if userID == "" || accessToken == "" {
		return "", "", fmt.Errorf("registration response is missing credentials: %v", t.response.body)
	}
	return userID, accessToken, nil
}

func (t *testContext) iAmRegisteredWith(body *godog.DocString) error {
	userID, accessToken, err := t.register(body)
	if err != nil {
		return err
	}
	t.vars["user_id"] = userID
	t.accessToken = accessToken
	return nil
}

func (t *testContext) aProfileIsRegisteredWith(alias string, body *godog.DocString) error {
	userID, _, err := t.register(body)
	if err != nil {
		return err
	}
	t.vars[alias] = userID
	return nil
}

func (t *testContext) iAmLoggedInAsAdmin() error {
	token, err := testTokens.GenerateAccessToken(context.Background(), testAdminUsername, adapter.RoleAdmin)
	if err != nil {
		return err
	}
	t.accessToken = token.Token
	return nil
}

func (t *testContext) iAmNotLoggedIn() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) iHaveAnAssistantSession() error {
	if err := t.iSendARequestTo(http.MethodPost, "/api/v1/assistant/sessions"); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}
	return t.iStoreTheResponseFieldAs("id", "session_id")
}

func (t *testContext) theIntentParserRespondsWith(body *godog.DocString) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(body.Content)), &payload); err != nil {
		return fmt.Errorf("invalid parser response: %w", err)
	}
	testParser.Respond(parserPath, http.StatusOK, payload)
	return nil
}

func (t *testContext) theIntentParserRespondsWithStatus(status int) error {
	testParser.Respond(parserPath, status, map[string]any{"error": http.StatusText(status)})
	return nil
}

func (t *testContext) theIntentParserShouldHaveReceived(count int) error {
	received := len(testParser.Requests(parserPath))
	if received != count {
		return fmt.Errorf("expected %d parser requests, got %d", count, received)
	}
	return nil
}

func (t *testContext) theIntentParserRequestFieldShouldBe(field, expected string) error {
	requests := testParser.Requests(parserPath)
	if len(requests) == 0 {
		return errors.New("the intent parser received no requests")
	}
	last := requests[len(requests)-1]
	value := getFieldValue(last, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in parser request: %v", field, last)
	}
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("parser request field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iStoreTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.vars[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{name}} with stored scenario values.
// Unknown names are left untouched.
func (t *testContext) replacePlaceholders(content string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := t.vars[name]; ok {
			return value
		}
		return match
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	decoder := json.NewDecoder(bytes.NewReader(bodyBytes))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = decoded
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	if actualValue := fmt.Sprintf("%v", value); actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if value := getFieldValue(t.response.body, field); value != nil {
		return fmt.Errorf("field '%s' expected to be absent, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list in response: %v", field, t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) findRows(table string, criteria map[string]any) (int, error) {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}
	return entitySlicePtr.Elem().Len(), nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.findRows(table, nil)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	count, err := t.findRows(table, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any
	switch v := object.(type) {
	case map[string]any, []any:
		field = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &field); err != nil {
			return nil
		}
	}

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
