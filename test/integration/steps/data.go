package steps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/asistente-contable/backend/internal/domain/entity"
	"github.com/asistente-contable/backend/internal/integration/persistence/model"
)

var columnPattern = regexp.MustCompile(`^[a-z_]+$`)

// registerDataSteps registers database, queue and external service steps.
func registerDataSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, aUserExistsWithEmailAndPassword)
	ctx.Step(`^the user "([^"]*)" is linked to chat "([^"]*)"$`, theUserIsLinkedToChat)

	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with the values:$`, theDbShouldContainObjectsInWithTheValues)

	ctx.Step(`^the email worker processes the queue$`, theEmailWorkerProcessesTheQueue)
	ctx.Step(`^the email API should have received (\d+) requests?$`, theEmailAPIShouldHaveReceivedRequests)
	ctx.Step(`^the email API last request field "([^"]*)" should contain "([^"]*)"$`, theEmailAPILastRequestFieldShouldContain)

	ctx.Step(`^the advice generator is unavailable$`, theAdviceGeneratorIsUnavailable)
	ctx.Step(`^the advice generator fails$`, theAdviceGeneratorFails)
	ctx.Step(`^the advice generator should have been called (\d+) times?$`, theAdviceGeneratorShouldHaveBeenCalled)
}

func aUserExistsWithEmailAndPassword(ctx context.Context, email, password string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return ctx, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:                uuid.New(),
		Email:             email,
		Name:              "Test User",
		PasswordHash:      string(hash),
		UserType:          string(entity.UserTypePersonal),
		PreferredCurrency: entity.DefaultCurrency,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := testDB.DbConn.Create(user).Error; err != nil {
		return ctx, fmt.Errorf("failed to create user: %w", err)
	}

	tc.users[email] = user.ID
	return SetTestContext(ctx, tc), nil
}

func theUserIsLinkedToChat(ctx context.Context, email, chatID string) error {
	result := testDB.DbConn.Model(&model.UserModel{}).
		Where("email = ?", email).
		Update("telegram_chat_id", chatID)
	if result.Error != nil {
		return fmt.Errorf("failed to link chat: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("user %s not found", email)
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, count int, table string) error {
	m, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %s", table)
	}

	var actual int64
	if err := testDB.DbConn.Model(m).Count(&actual).Error; err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d objects in %s, got %d", count, table, actual)
	}
	return nil
}

// theDbShouldContainObjectsInWithTheValues counts the rows matching every row of the table.
// The first table row holds column names.
func theDbShouldContainObjectsInWithTheValues(ctx context.Context, count int, table string, values *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	m, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %s", table)
	}
	if len(values.Rows) < 2 {
		return errors.New("expected a header row and at least one value row")
	}

	header := values.Rows[0].Cells
	var total int64
	for _, row := range values.Rows[1:] {
		query := testDB.DbConn.Model(m)
		for i, cell := range row.Cells {
			column := header[i].Value
			if !columnPattern.MatchString(column) {
				return fmt.Errorf("invalid column name %q", column)
			}
			query = query.Where(column+" = ?", tc.expand(cell.Value))
		}

		var matched int64
		if err := query.Count(&matched).Error; err != nil {
			return fmt.Errorf("failed to query %s: %w", table, err)
		}
		total += matched
	}

	if total != int64(count) {
		return fmt.Errorf("expected %d matching objects in %s, got %d", count, table, total)
	}
	return nil
}

func theEmailWorkerProcessesTheQueue(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.injector.EmailWorker.ProcessNow(ctx)
	return nil
}

func theEmailAPIShouldHaveReceivedRequests(ctx context.Context, count int) error {
	if actual := emailAPI.RequestCount(http.MethodPost, emailsPath); actual != count {
		return fmt.Errorf("expected %d email requests, got %d", count, actual)
	}
	return nil
}

func theEmailAPILastRequestFieldShouldContain(ctx context.Context, field, expected string) error {
	count := emailAPI.RequestCount(http.MethodPost, emailsPath)
	if count == 0 {
		return errors.New("the email API received no requests")
	}

	body := emailAPI.GetRequestBody(http.MethodPost, emailsPath, count-1)
	actual := fmt.Sprintf("%v", body[field])
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("email field '%s' does not contain '%s': %s", field, expected, actual)
	}
	return nil
}

func theAdviceGeneratorIsUnavailable(ctx context.Context) error {
	adviceGenerator.SetAvailable(false)
	return nil
}

func theAdviceGeneratorFails(ctx context.Context) error {
	adviceGenerator.SetError(errors.New("upstream timeout"))
	return nil
}

func theAdviceGeneratorShouldHaveBeenCalled(ctx context.Context, count int) error {
	if actual := adviceGenerator.Calls(); actual != count {
		return fmt.Errorf("expected %d generator calls, got %d", count, actual)
	}
	return nil
}
