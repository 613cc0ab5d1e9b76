package aws

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/ports"
)

const (
	defaultGroup = "member"
	codeTTL      = 10 * time.Minute
)

// IdentityConfig carries the provider-side settings.
type IdentityConfig struct {
	UserPoolID  string
	ClientID    string
	SenderEmail string
}

// CodeStore keeps verification codes alive between send and confirm. Take
// consumes the code; a missing or expired entry fails with
// domain.ErrInvalidVerificationCode.
type CodeStore interface {
	Put(ctx context.Context, destination, code string, ttl time.Duration) error
	Take(ctx context.Context, destination string) (string, error)
}

// Identity implements ports.IdentityAdmin against Cognito, with SES and SNS
// carrying the verification codes. Provider errors are logged here and
// collapse to domain.ErrDependencyFailure.
type Identity struct {
	cognito *cognitoidentityprovider.Client
	ses     *sesv2.Client
	sns     *sns.Client
	codes   CodeStore
	cfg     IdentityConfig
	logger  zerolog.Logger
}

func NewIdentity(awsCfg aws.Config, cfg IdentityConfig, codes CodeStore, logger zerolog.Logger) *Identity {
	return &Identity{
		cognito: cognitoidentityprovider.NewFromConfig(awsCfg),
		ses:     sesv2.NewFromConfig(awsCfg),
		sns:     sns.NewFromConfig(awsCfg),
		codes:   codes,
		cfg:     cfg,
		logger:  logger,
	}
}

// EnsureUser creates the pool user for email unless it already exists. New
// users skip the invitation email and land in the default group.
func (i *Identity) EnsureUser(ctx context.Context, email, name string) error {
	listed, err := i.cognito.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(i.cfg.UserPoolID),
		Filter:     aws.String(fmt.Sprintf("email = %q", email)),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		i.logger.Error().Err(err).Str("email", email).Msg("cognito list users failed")
		return domain.ErrDependencyFailure
	}
	if len(listed.Users) > 0 {
		return nil
	}

	_, err = i.cognito.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:    aws.String(i.cfg.UserPoolID),
		Username:      aws.String(email),
		MessageAction: cognitotypes.MessageActionTypeSuppress,
		UserAttributes: []cognitotypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
			{Name: aws.String("name"), Value: aws.String(name)},
		},
	})
	if err != nil {
		var exists *cognitotypes.UsernameExistsException
		if errors.As(err, &exists) {
			return nil
		}
		i.logger.Error().Err(err).Str("email", email).Msg("cognito create user failed")
		return domain.ErrDependencyFailure
	}

	_, err = i.cognito.AdminAddUserToGroup(ctx, &cognitoidentityprovider.AdminAddUserToGroupInput{
		UserPoolId: aws.String(i.cfg.UserPoolID),
		Username:   aws.String(email),
		GroupName:  aws.String(defaultGroup),
	})
	if err != nil {
		// Group membership is a capability add-on, not a precondition.
		i.logger.Warn().Err(err).Str("email", email).Msg("cognito group assignment failed")
	}
	return nil
}

// IssueTokens rotates the user's password and runs the admin auth flow to
// obtain a token bundle for them.
func (i *Identity) IssueTokens(ctx context.Context, email string) (*ports.TokenBundle, error) {
	password, err := randomPassword()
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	_, err = i.cognito.AdminSetUserPassword(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(i.cfg.UserPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		i.logger.Error().Err(err).Str("email", email).Msg("cognito set password failed")
		return nil, domain.ErrDependencyFailure
	}

	out, err := i.cognito.AdminInitiateAuth(ctx, &cognitoidentityprovider.AdminInitiateAuthInput{
		UserPoolId: aws.String(i.cfg.UserPoolID),
		ClientId:   aws.String(i.cfg.ClientID),
		AuthFlow:   cognitotypes.AuthFlowTypeAdminUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil || out.AuthenticationResult == nil {
		i.logger.Error().Err(err).Str("email", email).Msg("cognito auth failed")
		return nil, domain.ErrDependencyFailure
	}

	res := out.AuthenticationResult
	return &ports.TokenBundle{
		AccessToken:  aws.ToString(res.AccessToken),
		IDToken:      aws.ToString(res.IdToken),
		RefreshToken: aws.ToString(res.RefreshToken),
		TokenType:    aws.ToString(res.TokenType),
		ExpiresIn:    res.ExpiresIn,
	}, nil
}

// StartVerification generates a six-digit code, stores it with a short TTL
// and delivers it over SES or SNS depending on the destination shape.
func (i *Identity) StartVerification(ctx context.Context, destination string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("start verification: %w", err)
	}
	if err := i.codes.Put(ctx, destination, code, codeTTL); err != nil {
		i.logger.Error().Err(err).Msg("verification code store failed")
		return domain.ErrDependencyFailure
	}
	if strings.Contains(destination, "@") {
		return i.sendEmailCode(ctx, destination, code)
	}
	return i.sendSMSCode(ctx, destination, code)
}

// ConfirmVerification consumes the stored code and compares it.
func (i *Identity) ConfirmVerification(ctx context.Context, destination, code string) error {
	stored, err := i.codes.Take(ctx, destination)
	if err != nil {
		return err
	}
	if stored != code {
		return domain.ErrInvalidVerificationCode
	}
	return nil
}

func (i *Identity) sendEmailCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf("Your verification code is: %s. It expires in 10 minutes.", code)
	_, err := i.ses.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(i.cfg.SenderEmail),
		Destination:      &sestypes.Destination{ToAddresses: []string{email}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String("Your verification code")},
				Body:    &sestypes.Body{Text: &sestypes.Content{Data: aws.String(body)}},
			},
		},
	})
	if err != nil {
		i.logger.Error().Err(err).Msg("ses send failed")
		return domain.ErrDependencyFailure
	}
	return nil
}

func (i *Identity) sendSMSCode(ctx context.Context, phone, code string) error {
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	_, err := i.sns.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(fmt.Sprintf("Your verification code is: %s", code)),
	})
	if err != nil {
		i.logger.Error().Err(err).Msg("sns publish failed")
		return domain.ErrDependencyFailure
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// randomPassword builds a throwaway password satisfying the pool's
// complexity policy.
func randomPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "Aa1!" + base64.RawURLEncoding.EncodeToString(buf), nil
}
