package mail

import "fmt"

// AccountCreatedMessage is sent after a new account and its temporary
// credential have been persisted.
func AccountCreatedMessage(to, username, tempPassword string) Message {
	return Message{
		To:      to,
		Subject: "simpledb account created",
		Body: fmt.Sprintf(
			"Thank you for creating a simpledb account under the username %s. "+
				"Your temporary password is %s\n"+
				"You must set a new permanent password in order to activate your account. "+
				"You should send the HTTP POST request JSON\n"+
				`{"username":"%s","temp_password":"%s","new_password":"YOUR_NEW_PASSWORD"}`+"\n"+
				"to the /validate_and_create_password endpoint of the simpledb API",
			username, tempPassword, username, tempPassword),
	}
}

// ForgotUsernameMessage reminds the account holder of their username.
func ForgotUsernameMessage(to, username string) Message {
	return Message{
		To:      to,
		Subject: "simpledb forgot username",
		Body:    fmt.Sprintf("Thank you for using simpledb, your username is %s", username),
	}
}

// ForgotPasswordMessage carries a freshly issued temporary password.
func ForgotPasswordMessage(to, username, tempPassword string) Message {
	return Message{
		To:      to,
		Subject: "simpledb forgot password",
		Body: fmt.Sprintf(
			"Thank you for using your simpledb account under the username %s. "+
				"Your new temporary password is %s\n"+
				"You must set a new permanent password in order to re-activate your account. "+
				"You should send the HTTP POST request JSON\n"+
				`{"username":"%s","temp_password":"%s","new_password":"YOUR_NEW_PASSWORD"}`+"\n"+
				"to the /validate_and_create_password endpoint of the simpledb API",
			username, tempPassword, username, tempPassword),
	}
}
